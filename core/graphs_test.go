package core

import (
	"errors"
	"testing"
)

func TestQualificationGraph(t *testing.T) {
	players := newTestDirectory(20)

	// Export order: the final comes before its qualification
	final := NewCompetition(rawKnockOut("Final", 3, 1, 5, 2), players)
	qualification := NewCompetition(rawQualification("Qualification", playerRange(1, 10)...), players)
	semis := NewCompetition(rawKnockOut("Consolation", 7, 8, 9, 10), players)
	other := NewCompetition(rawQualification("Women", playerRange(11, 20)...), players)

	graph := NewQualificationGraph()
	for _, c := range []*Competition{final, qualification, semis, other} {
		if err := graph.Add(c); err != nil {
			t.Fatal(err)
		}
	}

	if err := graph.Validate(); err != nil {
		t.Fatal(err)
	}

	roots := graph.Roots()
	if len(roots) != 2 || roots[0] != qualification || roots[1] != other {
		t.Fatal("The roots are not the competitions without qualification")
	}

	subs := graph.SubCompetitions(qualification)
	if len(subs) != 2 || subs[0] != final || subs[1] != semis {
		t.Fatal("The sub-competitions are not in export order")
	}

	if !graph.IsSubCompetition(final) || !graph.IsSubCompetition(semis) {
		t.Fatal("The knock out competitions are not marked as sub-competitions")
	}
	if graph.IsSubCompetition(qualification) || graph.IsSubCompetition(other) {
		t.Fatal("A root is marked as sub-competition")
	}

	quals := graph.Qualifications(final)
	if len(quals) != 1 || quals[0] != qualification {
		t.Fatal("The final does not know its qualification")
	}

	if len(graph.SubCompetitions(other)) != 0 {
		t.Fatal("A competition with foreign teams was linked")
	}

	if len(graph.Competitions()) != 4 {
		t.Fatal("Not all competitions are in the graph")
	}
}

func TestNoSelfLink(t *testing.T) {
	players := newTestDirectory(4)
	competition := NewCompetition(rawQualification("Open", 1, 2, 3, 4), players)

	graph := NewQualificationGraph()
	graph.Add(competition)

	linked, err := graph.maybeAddSubCompetition(competition, competition)
	if err != nil || linked {
		t.Fatal("A competition was linked to itself")
	}
	if graph.IsSubCompetition(competition) || len(graph.SubCompetitions(competition)) != 0 {
		t.Fatal("A competition became its own sub-competition")
	}
}

func TestQualificationCycle(t *testing.T) {
	players := newTestDirectory(8)

	qualification := NewCompetition(rawQualification("Qualification", playerRange(1, 8)...), players)
	knockOut := NewCompetition(rawKnockOut("Final", 8, 7, 6, 5, 4, 3, 2, 1), players)

	graph := NewQualificationGraph()
	graph.Add(qualification)
	graph.Add(knockOut)

	err := graph.Validate()
	if !errors.Is(err, ErrQualificationCycle) {
		t.Fatal("Competitions with equal team sets did not cause a cycle error")
	}

	_, err = NewTournament([]RawCompetition{
		rawQualification("Qualification", playerRange(1, 8)...),
		rawKnockOut("Final", 8, 7, 6, 5, 4, 3, 2, 1),
	}, players)
	if !errors.Is(err, ErrQualificationCycle) {
		t.Fatal("The tournament was built despite the cycle")
	}
}
