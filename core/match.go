package core

import (
	"fmt"
	"strings"
)

type MatchResult int

const (
	Draw MatchResult = iota
	Win1
	Win2
)

func (r MatchResult) String() string {
	switch r {
	case Win1:
		return "win1"
	case Win2:
		return "win2"
	default:
		return "draw"
	}
}

// A match between two teams.
//
// The result is derived from the games when the
// match is created and never changes afterwards.
type Match struct {
	Team1 *Team
	Team2 *Team

	// The match number in the export
	Number int
	// Round or bracket depth of the match. The meaning
	// depends on the source of the export.
	Depth int

	Games  []RawGame
	Result MatchResult
}

// Returns the winning team or nil on a draw
func (m *Match) Winner() *Team {
	switch m.Result {
	case Win1:
		return m.Team1
	case Win2:
		return m.Team2
	}
	return nil
}

func (m *Match) String() string {
	var sb strings.Builder
	switch m.Result {
	case Win2:
		sb.WriteString(fmt.Sprintf("%v > %v", m.Team2, m.Team1))
	case Win1:
		sb.WriteString(fmt.Sprintf("%v > %v", m.Team1, m.Team2))
	default:
		sb.WriteString(fmt.Sprintf("%v - %v", m.Team1, m.Team2))
	}

	if len(m.Games) > 0 {
		sb.WriteRune('\t')
		for _, g := range m.Games {
			sb.WriteString(fmt.Sprintf("%v - %v ", g.Score1, g.Score2))
		}
	}

	return strings.TrimSpace(sb.String())
}

// Determines the result of a match from its games.
//
// Every game counts +1 when the first team scored more,
// -1 when the second team scored more and 0 otherwise.
// The sign of the sum decides the result.
func ResultOf(games []RawGame) MatchResult {
	score := 0
	for _, g := range games {
		score += sign(g.Score1 - g.Score2)
	}

	switch {
	case score > 0:
		return Win1
	case score < 0:
		return Win2
	default:
		return Draw
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Creates a match between the two teams with the result
// derived from the games
func NewMatch(team1, team2 *Team, games []RawGame) *Match {
	return &Match{
		Team1:  team1,
		Team2:  team2,
		Games:  games,
		Result: ResultOf(games),
	}
}

// A Round is a list of matches that were played in
// parallel during a phase.
type Round struct {
	// Round number starting at 1
	No      int
	Matches []*Match
}
