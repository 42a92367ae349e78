package core

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnrankedTeam = errors.New("team has no qualification rank")
)

// The index of the first rank that is reordered by Reseed.
// The top four are decided by the semi-finals and the final.
const FirstSeededRank = 4

// Reorders the ranking of a knock out phase by the
// qualification ranks.
//
// The ranks after the top four are tied in tiers that double in size
// (5-8, 9-16, 17-32, ...) because the teams in one tier lost in the
// same round. Each tier is sorted by the qualification ranks of its
// teams while keeping the order of equally ranked teams.
// Afterwards all ranks are renumbered from 1 to the number of entries.
//
// Every team of the phase needs a rank in the qualification map.
// Otherwise ErrUnrankedTeam is returned and the phase is not changed.
func Reseed(phase *Phase, qualification map[string]int) error {
	if team := unrankedTeam(phase, qualification); team != nil {
		return fmt.Errorf("%w: %v", ErrUnrankedTeam, team)
	}

	ranking := phase.Ranking

	for start := FirstSeededRank; start < len(ranking); start *= 2 {
		end := min(len(ranking), 2*start)
		slices.SortStableFunc(ranking[start:end], func(a, b Entry) int {
			rankA := qualification[a.Team.Key()]
			rankB := qualification[b.Team.Key()]
			return cmp.Compare(rankA, rankB)
		})
	}

	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	return nil
}

// Returns the first team of the phase ranking that has no
// qualification rank or nil if all teams have one
func unrankedTeam(phase *Phase, qualification map[string]int) *Team {
	for _, e := range phase.Ranking {
		if _, ok := qualification[e.Team.Key()]; !ok {
			return e.Team
		}
	}
	return nil
}
