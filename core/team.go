package core

import (
	"slices"
	"strings"

	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/sirupsen/logrus"
)

// A Player is a person as resolved by a PlayerDirectory.
//
// Two players are the same person when their licenses are equal.
// Players without a license are compared by their names so records
// from different sources that refer to the same person still match.
type Player struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	License   string `json:"license,omitempty"`
}

// Returns the identity of the player. Equal keys mean equal players.
func (p Player) Key() string {
	if p.License != "" {
		return "lic:" + p.License
	}
	return "name:" + p.FirstName + "\n" + p.LastName
}

func (p Player) Equal(other Player) bool {
	return p.Key() == other.Key()
}

func (p Player) String() string {
	return p.FirstName + " " + p.LastName
}

// A PlayerDirectory resolves the player ids of an export
// to players. It has to be completely filled before the
// competitions are built.
type PlayerDirectory interface {
	Lookup(id uint64) (Player, bool)
}

// A Team is either a single player or a doubles pair
// taking part in a competition.
type Team struct {
	// The id of the team in the export. It is only unique
	// inside of the owning competition.
	Id uint64

	Player1 Player
	// Nil for single player teams
	Player2 *Player
}

// Returns a key that identifies the team by its players.
// The id and the order of the players do not influence the key.
func (t *Team) Key() string {
	if t.Player2 == nil {
		return t.Player1.Key()
	}
	keys := []string{t.Player1.Key(), t.Player2.Key()}
	slices.Sort(keys)
	return strings.Join(keys, "\t")
}

// Returns true when both teams consist of the same players
func (t *Team) Equal(other *Team) bool {
	return t.Key() == other.Key()
}

func (t *Team) IsDoubles() bool {
	return t.Player2 != nil
}

// Returns the players of the team in their registered order
func (t *Team) Players() []Player {
	if t.Player2 == nil {
		return []Player{t.Player1}
	}
	return []Player{t.Player1, *t.Player2}
}

func (t *Team) String() string {
	var sb strings.Builder
	sb.WriteRune('(')
	sb.WriteString(t.Player1.String())
	if t.Player2 != nil {
		sb.WriteString(", ")
		sb.WriteString(t.Player2.String())
	}
	sb.WriteRune(')')
	return sb.String()
}

// Creates the Team of a raw team record.
//
// Returns false when the first player can not be resolved.
// An unresolvable second player makes the team a single player team.
func NewTeam(raw RawTeam, players PlayerDirectory) (*Team, bool) {
	player1, ok := players.Lookup(raw.Player1Id)
	if !ok {
		logging.GetLogger().WithFields(logrus.Fields{
			"team_id":   raw.Id,
			"player_id": raw.Player1Id,
		}).Debug("Dropping team with unknown first player")
		return nil, false
	}

	team := &Team{Id: raw.Id, Player1: player1}

	if raw.Player2Id != 0 {
		player2, ok := players.Lookup(raw.Player2Id)
		if ok {
			team.Player2 = &player2
		}
	}

	return team, true
}
