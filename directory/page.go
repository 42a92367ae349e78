package directory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/ezBadminton/fastimport/core"
)

var (
	ErrNoPlayerName = errors.New("can't find the player name on the page")
	ErrEmptyName    = errors.New("the player name is incomplete")
)

const nameClass = "nomdujoueur"

// Parses a player registry page. The name is the first text
// of the div with the class nomdujoueur. The words written in
// upper case form the last name, the remaining words the first name.
func ParsePlayerPage(r io.Reader) (core.Player, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return core.Player{}, fmt.Errorf("failed to parse player page: %w", err)
	}

	div := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return class == nameClass
	}).First()
	if div.Length() == 0 {
		return core.Player{}, ErrNoPlayerName
	}

	text := div.Contents().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "#text"
	}).First()
	if text.Length() == 0 {
		return core.Player{}, ErrNoPlayerName
	}

	return SplitName(text.Text()), nil
}

// Splits a full name into a player. Words written in upper case
// are the last name and get normalised to capitalised case.
func SplitName(name string) core.Player {
	firstNames := make([]string, 0, 2)
	lastNames := make([]string, 0, 2)

	for _, word := range strings.Fields(name) {
		if isUpperCase(word) {
			lastNames = append(lastNames, toNormalCase(word))
		} else {
			firstNames = append(firstNames, word)
		}
	}

	return core.Player{
		FirstName: strings.Join(firstNames, " "),
		LastName:  strings.Join(lastNames, " "),
	}
}

func isUpperCase(word string) bool {
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Keeps the first letter and lower cases the rest
func toNormalCase(word string) string {
	var b strings.Builder
	for i, r := range []rune(word) {
		if i == 0 {
			b.WriteRune(r)
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// A Resolver finds the player registered under a license number
type Resolver interface {
	Resolve(license uint64) (core.Player, error)
}

// The PageResolver reads saved registry pages from a directory.
// The page of a license is stored as the zero padded
// license number, e.g. 00012345.html.
type PageResolver struct {
	Dir string
}

func NewPageResolver(dir string) *PageResolver {
	return &PageResolver{Dir: dir}
}

func (r *PageResolver) PagePath(license uint64) string {
	return filepath.Join(r.Dir, fmt.Sprintf("%08d.html", license))
}

func (r *PageResolver) Resolve(license uint64) (core.Player, error) {
	file, err := os.Open(r.PagePath(license))
	if err != nil {
		return core.Player{}, err
	}
	defer file.Close()

	player, err := ParsePlayerPage(file)
	if err != nil {
		return core.Player{}, fmt.Errorf("license %08d: %w", license, err)
	}
	player.License = fmt.Sprintf("%08d", license)

	return player, nil
}
