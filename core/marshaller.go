package core

import (
	"encoding/json"
	"maps"
)

func marshalTeam(team *Team) map[string]any {
	return map[string]any{
		"id":      team.Id,
		"name":    team.String(),
		"players": team.Players(),
		"doubles": team.IsDoubles(),
	}
}

func marshalRanking(phase *Phase, metrics map[string]*MatchMetrics) []map[string]any {
	ranking := make([]map[string]any, len(phase.Ranking))
	for i, e := range phase.Ranking {
		entry := map[string]any{
			"rank": e.Rank,
			"team": marshalTeam(e.Team),
		}
		if m, ok := metrics[e.Team.Key()]; ok {
			entry["metrics"] = m
		}
		ranking[i] = entry
	}
	return ranking
}

func marshalMatch(match *Match) map[string]any {
	games := make([][]int, len(match.Games))
	for i, g := range match.Games {
		games[i] = []int{g.Score1, g.Score2}
	}
	result := map[string]any{
		"team1":  match.Team1.Id,
		"team2":  match.Team2.Id,
		"number": match.Number,
		"depth":  match.Depth,
		"result": match.Result.String(),
		"games":  games,
		"winner": nil,
	}
	if winner := match.Winner(); winner != nil {
		result["winner"] = winner.Id
	}
	return result
}

func marshalMatchList(matches []*Match) []map[string]any {
	result := make([]map[string]any, len(matches))
	for i, m := range matches {
		result[i] = marshalMatch(m)
	}
	return result
}

func marshalRounds(rounds []*Round) []map[string]any {
	result := make([]map[string]any, len(rounds))
	for i, r := range rounds {
		result[i] = map[string]any{
			"no":      r.No,
			"matches": marshalMatchList(r.Matches),
		}
	}
	return result
}

func marshalPhase(phase *Phase, withRounds bool) map[string]any {
	metrics := CreateMetrics(phase.Matches, phase.Teams())
	result := map[string]any{
		"type":    phase.Type,
		"ranking": marshalRanking(phase, metrics),
	}
	if withRounds {
		result["rounds"] = marshalRounds(phase.SwissRounds())
	} else {
		result["matches"] = marshalMatchList(phase.Matches)
	}
	return result
}

func marshalCompetition(competition *Competition, root bool) (map[string]any, error) {
	phase, err := competition.RankingPhase()
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"name":     competition.Name,
		"type":     competition.Type,
		"category": competition.Category,
	}
	maps.Copy(result, marshalPhase(phase, root))

	return result, nil
}

func marshalTournament(tournament *Tournament) (map[string]any, error) {
	roots := tournament.Roots()
	competitions := make([]map[string]any, 0, len(roots))

	for i, root := range roots {
		marshalled, err := marshalCompetition(root, true)
		if err != nil {
			return nil, err
		}

		subs := tournament.SubCompetitions(root)
		marshalledSubs := make([]map[string]any, 0, len(subs))
		for _, sub := range subs {
			marshalledSub, err := marshalCompetition(sub, false)
			if err != nil {
				return nil, err
			}
			marshalledSub["reseeded"] = tournament.IsReseeded(sub)
			marshalledSub["qualifications"] = competitionNames(tournament.Qualifications(sub))
			marshalledSubs = append(marshalledSubs, marshalledSub)
		}

		marshalled["label"] = root.Label(i + 1)
		marshalled["subCompetitions"] = marshalledSubs
		competitions = append(competitions, marshalled)
	}

	result := map[string]any{
		"competitions": competitions,
		"skipped":      competitionNames(tournament.Skipped()),
	}

	return result, nil
}

func competitionNames(competitions []*Competition) []string {
	names := make([]string, len(competitions))
	for i, c := range competitions {
		names[i] = c.String()
	}
	return names
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	anymap, err := marshalTournament(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(anymap)
}
