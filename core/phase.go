package core

import (
	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/sirupsen/logrus"
)

// An Entry is a team on a rank of a phase
type Entry struct {
	Team *Team
	Rank int
}

// A Phase is a stage of a competition like a
// qualification round or a final bracket.
type Phase struct {
	Type string

	// The ranking as given by the export. After the
	// ranking adjustment the ranks are dense and start at 1.
	Ranking []Entry

	Matches []*Match
}

// Returns the teams of the ranking in ranking order
func (p *Phase) Teams() []*Team {
	teams := make([]*Team, 0, len(p.Ranking))
	for _, e := range p.Ranking {
		teams = append(teams, e.Team)
	}
	return teams
}

// Splits the matches of the phase into rounds of a swiss system.
//
// The matches are assumed to be in playing order. A new round
// starts as soon as one of the teams of a match has already played
// as many matches as the number of the current round.
func (p *Phase) SwissRounds() []*Round {
	matchesPerTeam := make(map[string]int, len(p.Ranking))
	rounds := make([]*Round, 0, 8)

	round := &Round{No: 1}
	for _, m := range p.Matches {
		key1 := m.Team1.Key()
		key2 := m.Team2.Key()

		nextRound := matchesPerTeam[key1] >= round.No || matchesPerTeam[key2] >= round.No
		if nextRound {
			rounds = append(rounds, round)
			round = &Round{No: round.No + 1}
		}

		matchesPerTeam[key1] += 1
		matchesPerTeam[key2] += 1

		round.Matches = append(round.Matches, m)
	}

	if len(round.Matches) > 0 {
		rounds = append(rounds, round)
	}

	return rounds
}

// Creates the Phase of a raw phase record.
//
// Ranking entries and matches that reference a team which is
// not in the teams table are left out.
func NewPhase(raw RawPhase, teams map[uint64]*Team) *Phase {
	phase := &Phase{
		Type:    raw.Type,
		Ranking: make([]Entry, 0, len(raw.Rankings)),
		Matches: make([]*Match, 0, len(raw.Matches)),
	}

	log := logging.GetLogger().WithField("phase", raw.Type)

	for _, r := range raw.Rankings {
		team, ok := teams[r.TeamId]
		if !ok {
			log.WithField("team_id", r.TeamId).Debug("Dropping ranking entry of unknown team")
			continue
		}
		phase.Ranking = append(phase.Ranking, Entry{Team: team, Rank: r.Rank})
	}

	for _, r := range raw.Matches {
		team1, ok1 := teams[r.Team1Id]
		team2, ok2 := teams[r.Team2Id]
		if !ok1 || !ok2 {
			log.WithFields(logrus.Fields{
				"team1_id": r.Team1Id,
				"team2_id": r.Team2Id,
			}).Debug("Dropping match of unknown team")
			continue
		}
		match := NewMatch(team1, team2, r.Games)
		match.Number = r.Number
		match.Depth = r.Depth
		phase.Matches = append(phase.Matches, match)
	}

	return phase
}
