package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoPhases = errors.New("competition has no phases")
)

// A Competition is one discipline of a tournament (e.g. open doubles)
// with its registered teams and the phases that were played.
//
// A competition does not know about the competitions it qualifies for.
// Those links are kept in a QualificationGraph.
type Competition struct {
	Name     string
	Type     string
	Category string

	// The teams keyed by their export id
	Teams map[uint64]*Team

	Phases []*Phase

	// Id for graph node hashing
	id int
}

func (c *Competition) Id() int {
	return c.id
}

// Returns the phase that represents the competition's result.
// That is the first phase with matches or the first phase
// if none of them have matches.
func (c *Competition) RankingPhase() (*Phase, error) {
	if len(c.Phases) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoPhases, c.Name)
	}

	for _, p := range c.Phases {
		if len(p.Matches) > 0 {
			return p, nil
		}
	}

	return c.Phases[0], nil
}

// Returns true when every team of the other competition is also
// a team of this competition. A competition never qualifies for
// itself.
func (c *Competition) IsQualificationFor(other *Competition) bool {
	if c == other {
		return false
	}

	keys := make(map[string]struct{}, len(c.Teams))
	for _, t := range c.Teams {
		keys[t.Key()] = struct{}{}
	}

	for _, t := range other.Teams {
		if _, ok := keys[t.Key()]; !ok {
			return false
		}
	}

	return true
}

// Returns the ranks of the ranking phase keyed by Team.Key()
func (c *Competition) Rankings() (map[string]int, error) {
	phase, err := c.RankingPhase()
	if err != nil {
		return nil, err
	}

	rankings := make(map[string]int, len(phase.Ranking))
	for _, e := range phase.Ranking {
		rankings[e.Team.Key()] = e.Rank
	}

	return rankings, nil
}

// Returns a display label like "1 - Open Doubles (Men)"
// with the given 1-based index.
func (c *Competition) Label(index int) string {
	category := c.Category
	if category != "" {
		category = fmt.Sprintf(" (%v)", category)
	}
	label := fmt.Sprintf("%v - %v %v%v", index, c.Type, c.Name, category)
	return strings.TrimSpace(label)
}

func (c *Competition) String() string {
	return strings.TrimSpace(c.Type + " " + c.Name)
}

// Creates the Competition of a raw competition record.
//
// Teams whose first player is not in the directory are dropped
// together with all ranking entries and matches that reference them.
func NewCompetition(raw RawCompetition, players PlayerDirectory) *Competition {
	teams := make(map[uint64]*Team, len(raw.Teams))
	for _, r := range raw.Teams {
		team, ok := NewTeam(r, players)
		if ok {
			teams[team.Id] = team
		}
	}

	phases := make([]*Phase, 0, len(raw.Phases))
	for _, r := range raw.Phases {
		phases = append(phases, NewPhase(r, teams))
	}

	competition := &Competition{
		Name:     raw.Name,
		Type:     raw.Type,
		Category: raw.Category,
		Teams:    teams,
		Phases:   phases,
		id:       NextId(),
	}

	logging.WithCompetition(competition.String()).WithFields(logrus.Fields{
		"teams":         len(teams),
		"dropped_teams": len(raw.Teams) - len(teams),
		"phases":        len(phases),
	}).Debug("Built competition")

	return competition
}
