package core

import (
	"fmt"

	"github.com/ezBadminton/fastimport/internal/logging"
)

// A Tournament is the complete model of an export.
//
// It holds all competitions in the order of the export and
// the qualification links between them. The root competitions
// together with their sub-competitions are the output of the import.
type Tournament struct {
	*QualificationGraph

	// Ids of the sub-competitions that were already reseeded
	reseeded map[int]bool
}

// Builds all competitions from the raw records and links the
// qualification competitions to their sub-competitions.
//
// Returns ErrQualificationCycle when two competitions have
// the same set of teams.
func NewTournament(competitions []RawCompetition, players PlayerDirectory) (*Tournament, error) {
	qualificationGraph := NewQualificationGraph()

	for _, raw := range competitions {
		competition := NewCompetition(raw, players)
		if err := qualificationGraph.Add(competition); err != nil {
			return nil, fmt.Errorf("linking competition %v: %w", competition, err)
		}
	}

	if err := qualificationGraph.Validate(); err != nil {
		return nil, err
	}

	tournament := &Tournament{
		QualificationGraph: qualificationGraph,
		reseeded:           make(map[int]bool),
	}

	return tournament, nil
}

// Builds the tournament and adjusts the rankings of
// all sub-competitions
func Process(competitions []RawCompetition, players PlayerDirectory) (*Tournament, error) {
	tournament, err := NewTournament(competitions, players)
	if err != nil {
		return nil, err
	}

	if err := tournament.AdjustRankings(); err != nil {
		return nil, err
	}

	return tournament, nil
}

// Reseeds every phase of every sub-competition of the root
// competitions with the ranking of the root. See Reseed.
//
// A sub-competition is only reseeded once. When it is linked to
// more than one root the first root in export order is used.
func (t *Tournament) AdjustRankings() error {
	for _, root := range t.Roots() {
		subs := t.SubCompetitions(root)
		if len(subs) == 0 {
			continue
		}

		qualification, err := root.Rankings()
		if err != nil {
			return fmt.Errorf("ranking qualification %v: %w", root, err)
		}

		for _, sub := range subs {
			if t.reseeded[sub.Id()] {
				logging.WithCompetition(sub.String()).
					WithField("qualification", root.String()).
					Warn("Sub-competition was already reseeded by another qualification")
				continue
			}

			if err := t.reseed(sub, qualification); err != nil {
				return fmt.Errorf("reseeding %v from %v: %w", sub, root, err)
			}
		}
	}

	return nil
}

func (t *Tournament) reseed(sub *Competition, qualification map[string]int) error {
	for _, p := range sub.Phases {
		if team := unrankedTeam(p, qualification); team != nil {
			return fmt.Errorf("%w: %v", ErrUnrankedTeam, team)
		}
	}

	for _, p := range sub.Phases {
		if err := Reseed(p, qualification); err != nil {
			return err
		}
	}

	t.reseeded[sub.Id()] = true

	logging.WithCompetition(sub.String()).
		WithField("phases", len(sub.Phases)).
		Debug("Reseeded sub-competition")

	return nil
}

// Returns true when the rankings of the competition were
// adjusted by AdjustRankings
func (t *Tournament) IsReseeded(competition *Competition) bool {
	return t.reseeded[competition.Id()]
}
