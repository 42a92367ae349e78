package core

type MatchMetrics struct {
	NumMatches int `json:"numMatches"`
	Wins       int `json:"wins"`
	Draws      int `json:"draws"`
	Losses     int `json:"losses"`

	NumGames   int `json:"numGames"`
	GameWins   int `json:"gameWins"`
	GameLosses int `json:"gameLosses"`

	GameDifference int `json:"gameDifference"`
}

func (m *MatchMetrics) UpdateDifferences() {
	m.GameDifference = m.GameWins - m.GameLosses
}

// Creates a MatchMetrics struct for each team in the matches
// keyed by Team.Key().
// If the teams slice is not nil/empty only the matches where both
// opponents are in the slice are counted and every team of the
// slice gets metrics even if it has no matches.
func CreateMetrics(matches []*Match, teams []*Team) map[string]*MatchMetrics {
	metrics := make(map[string]*MatchMetrics)

	var filter map[string]struct{}
	if len(teams) > 0 {
		filter = make(map[string]struct{}, len(teams))
		for _, t := range teams {
			filter[t.Key()] = struct{}{}
			metrics[t.Key()] = &MatchMetrics{}
		}
	}

	for _, m := range matches {
		extractMatchMetrics(m, filter, metrics)
	}

	for _, m := range metrics {
		m.UpdateDifferences()
	}

	return metrics
}

func extractMatchMetrics(
	match *Match,
	filter map[string]struct{},
	metrics map[string]*MatchMetrics,
) {
	key1 := match.Team1.Key()
	key2 := match.Team2.Key()

	if filter != nil {
		_, doCount1 := filter[key1]
		_, doCount2 := filter[key2]
		if !doCount1 || !doCount2 {
			return
		}
	}

	m1, ok := metrics[key1]
	if !ok {
		m1 = &MatchMetrics{}
		metrics[key1] = m1
	}

	m2, ok := metrics[key2]
	if !ok {
		m2 = &MatchMetrics{}
		metrics[key2] = m2
	}

	m1.NumMatches += 1
	m2.NumMatches += 1

	switch match.Result {
	case Win1:
		m1.Wins += 1
		m2.Losses += 1
	case Win2:
		m2.Wins += 1
		m1.Losses += 1
	default:
		m1.Draws += 1
		m2.Draws += 1
	}

	for _, g := range match.Games {
		m1.NumGames += 1
		m2.NumGames += 1

		if g.Score1 == g.Score2 {
			continue
		}
		if g.Score1 > g.Score2 {
			m1.GameWins += 1
			m2.GameLosses += 1
		} else {
			m2.GameWins += 1
			m1.GameLosses += 1
		}
	}
}
