package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestProcessTournament(t *testing.T) {
	players := newTestDirectory(20)

	raw := []RawCompetition{
		rawQualification("Qualification", playerRange(1, 10)...),
		// Quarter final losers H, E, G, D
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 4),
		rawQualification("Women", playerRange(11, 20)...),
	}

	tournament, err := Process(raw, players)
	if err != nil {
		t.Fatal(err)
	}

	roots := tournament.Roots()
	if len(roots) != 2 || roots[0].Name != "Qualification" || roots[1].Name != "Women" {
		t.Fatal("The roots are not the two qualification competitions")
	}

	subs := tournament.SubCompetitions(roots[0])
	if len(subs) != 1 || subs[0].Name != "Final" {
		t.Fatal("The final is not a sub-competition of the qualification")
	}

	final := subs[0]
	if !tournament.IsReseeded(final) || tournament.IsReseeded(roots[0]) {
		t.Fatal("Only the sub-competition should be reseeded")
	}

	phase := final.Phases[0]
	if teamOrder(phase) != "CAFBDEGH" {
		t.Fatalf("Unexpected final ranking %v", teamOrder(phase))
	}
	if rankOrder(phase) != "[1 2 3 4 5 6 7 8]" {
		t.Fatal("The final ranks are not dense")
	}

	qualificationPhase := roots[0].Phases[0]
	if rankOrder(qualificationPhase) != "[1 2 3 4 5 6 7 8 9 10]" || teamOrder(qualificationPhase) != "ABCDEFGHIJ" {
		t.Fatal("The qualification ranking was changed")
	}
}

func TestAdjustRankingsOnlyOnce(t *testing.T) {
	players := newTestDirectory(10)

	raw := []RawCompetition{
		rawQualification("Qualification", playerRange(1, 10)...),
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 4),
	}

	tournament, err := Process(raw, players)
	if err != nil {
		t.Fatal(err)
	}

	final := tournament.SubCompetitions(tournament.Roots()[0])[0]
	before := teamOrder(final.Phases[0])

	if err := tournament.AdjustRankings(); err != nil {
		t.Fatal(err)
	}
	if teamOrder(final.Phases[0]) != before {
		t.Fatal("A second adjustment changed the ranking")
	}
}

func TestAdjustRankingsUnrankedTeam(t *testing.T) {
	players := newTestDirectory(10)

	qualification := rawQualification("Qualification", playerRange(1, 10)...)
	// Player J is registered but missing from the qualification ranking
	qualification.Phases[0].Rankings = qualification.Phases[0].Rankings[:9]

	raw := []RawCompetition{
		qualification,
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 10),
	}

	_, err := Process(raw, players)
	if !errors.Is(err, ErrUnrankedTeam) {
		t.Fatal("A sub-competition team without qualification rank did not error")
	}
}

func TestAdjustRankingsEmptyQualification(t *testing.T) {
	players := newTestDirectory(10)

	qualification := rawQualification("Qualification", playerRange(1, 10)...)
	qualification.Phases = nil

	raw := []RawCompetition{
		qualification,
		rawKnockOut("Final", 3, 1, 6, 2),
	}

	_, err := Process(raw, players)
	if !errors.Is(err, ErrNoPhases) {
		t.Fatal("A qualification without phases did not error")
	}
}

func TestTournamentJSON(t *testing.T) {
	players := newTestDirectory(10)

	raw := []RawCompetition{
		rawQualification("Qualification", playerRange(1, 10)...),
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 4),
	}

	tournament, err := Process(raw, players)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(tournament)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Competitions []struct {
			Label   string
			Ranking []struct {
				Rank    int
				Metrics struct{ Wins int }
			}
			Rounds          []struct{ No int }
			SubCompetitions []struct {
				Name           string
				Reseeded       bool
				Qualifications []string
				Ranking        []struct {
					Rank int
					Team struct{ Doubles bool }
				}
				Matches []struct {
					Result string
					Winner *uint64
				}
			}
		}
		Skipped []string
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if len(decoded.Competitions) != 1 {
		t.Fatal("The JSON does not contain the one root competition")
	}

	root := decoded.Competitions[0]
	if root.Label != "1 - Open Singles Qualification" {
		t.Fatalf("Unexpected label %v", root.Label)
	}
	if len(root.Ranking) != 10 || root.Ranking[0].Metrics.Wins != 1 {
		t.Fatal("The root ranking or its metrics are missing")
	}
	if len(root.Rounds) != 1 {
		t.Fatal("The qualification matches are not grouped into one round")
	}

	if len(root.SubCompetitions) != 1 || !root.SubCompetitions[0].Reseeded {
		t.Fatal("The reseeded final is missing")
	}
	sub := root.SubCompetitions[0]
	if sub.Ranking[4].Rank != 5 || sub.Ranking[7].Rank != 8 {
		t.Fatal("The final ranks are not the adjusted ranks")
	}
	if len(sub.Matches) != 1 || sub.Matches[0].Result != "win1" {
		t.Fatal("The final matches are missing")
	}
	if sub.Matches[0].Winner == nil || *sub.Matches[0].Winner != 103 {
		t.Fatal("The winner of the final is missing")
	}
	if sub.Ranking[0].Team.Doubles {
		t.Fatal("A single player team is marked as doubles")
	}
	if len(sub.Qualifications) != 1 || sub.Qualifications[0] != "Open Singles Qualification" {
		t.Fatal("The qualification of the final is missing")
	}
	if decoded.Skipped == nil || len(decoded.Skipped) != 0 {
		t.Fatal("The skipped competitions are not an empty list")
	}

	empty := &Tournament{QualificationGraph: NewQualificationGraph()}
	empty.Add(NewCompetition(RawCompetition{Name: "Empty", Teams: rawSingles(0, 1, 2)}, players))
	if _, err := json.Marshal(empty); !errors.Is(err, ErrNoPhases) {
		t.Fatal("A competition without phases was marshalled")
	}
}

func TestProcessSkipsUnresolvedCompetitions(t *testing.T) {
	players := newTestDirectory(10)

	// None of the players of the juniors and seniors are in the directory
	juniors := rawQualification("Juniors", 31, 32, 33)
	seniors := rawQualification("Seniors", 41, 42)

	raw := []RawCompetition{
		rawQualification("Qualification", playerRange(1, 10)...),
		juniors,
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 4),
		seniors,
	}

	tournament, err := Process(raw, players)
	if err != nil {
		t.Fatal(err)
	}

	roots := tournament.Roots()
	if len(roots) != 1 || roots[0].Name != "Qualification" {
		t.Fatal("A competition without teams became a root")
	}

	subs := tournament.SubCompetitions(roots[0])
	if len(subs) != 1 || subs[0].Name != "Final" || !tournament.IsReseeded(subs[0]) {
		t.Fatal("A competition without teams was linked to the qualification")
	}

	skipped := tournament.Skipped()
	if len(skipped) != 2 || skipped[0].Name != "Juniors" || skipped[1].Name != "Seniors" {
		t.Fatal("The competitions without teams were not skipped")
	}

	data, err := json.Marshal(tournament)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct{ Skipped []string }
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Skipped) != 2 {
		t.Fatal("The skipped competitions are missing in the JSON")
	}
}

func TestProcessEqualTeamSets(t *testing.T) {
	players := newTestDirectory(8)

	// The knock out has exactly the teams of the qualification
	raw := []RawCompetition{
		rawQualification("Qualification", playerRange(1, 8)...),
		rawKnockOut("Final", 3, 1, 6, 2, 8, 5, 7, 4),
	}

	tournament, err := Process(raw, players)
	if !errors.Is(err, ErrQualificationCycle) || tournament != nil {
		t.Fatal("Competitions with equal team sets did not cause a cycle error")
	}
}
