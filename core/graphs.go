// This file contains thin wrappers around the graph module
// for managing the links between competitions.
package core

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
	"github.com/ezBadminton/fastimport/internal/logging"
)

var (
	ErrQualificationCycle = errors.New("competitions qualify for each other")
)

var nodeId int = 0

func NextId() int {
	id := nodeId
	nodeId += 1
	return id
}

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
	adjacencyMap   map[int]map[int]graph.Edge[int]
	predecessorMap map[int]map[int]graph.Edge[int]
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	err := g.Graph.AddEdge(source.Id(), target.Id())
	g.adjacencyMap = nil
	g.predecessorMap = nil
	return err
}

func (g *DependencyGraph[T]) AddVertex(node T) error {
	err := g.Graph.AddVertex(node)
	g.adjacencyMap = nil
	g.predecessorMap = nil
	return err
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants).
func (g *DependencyGraph[T]) GetDependants(source T) []T {
	if g.adjacencyMap == nil {
		g.adjacencyMap, _ = g.Graph.AdjacencyMap()
	}
	return g.collect(g.adjacencyMap[source.Id()])
}

// Returns the nodes that are on the incoming edges of the given
// target node (the dependencies).
func (g *DependencyGraph[T]) GetDependencies(target T) []T {
	if g.predecessorMap == nil {
		g.predecessorMap, _ = g.Graph.PredecessorMap()
	}
	return g.collect(g.predecessorMap[target.Id()])
}

func (g *DependencyGraph[T]) HasEdge(source, target T) bool {
	_, err := g.Graph.Edge(source.Id(), target.Id())
	return err == nil
}

func (g *DependencyGraph[T]) collect(edges map[int]graph.Edge[int]) []T {
	nodes := make([]T, 0, len(edges))
	for k := range edges {
		node, err := g.Vertex(k)
		if err != nil {
			panic("Edge points to a node that is not in the graph")
		}
		nodes = append(nodes, node)
	}
	slices.SortFunc(nodes, func(a, b T) int { return cmp.Compare(a.Id(), b.Id()) })
	return nodes
}

// A QualificationGraph has the competitions of a tournament as its
// nodes. A directed edge goes from a qualification competition to
// each competition that it qualifies for (its sub-competitions).
//
// Competitions are linked while they are added. A competition that
// has an incoming edge is a sub-competition. All others are roots.
type QualificationGraph struct {
	DependencyGraph[*Competition]

	// The competitions in the order they were added
	competitions []*Competition

	// Competitions without resolved teams. They are kept out
	// of the graph because their empty team set would be a
	// subset of every other competition.
	skipped []*Competition
}

// Adds the competition and links it to all previously added
// competitions that it qualifies for or that qualify for it.
//
// Competitions without teams are not added. See Skipped.
func (g *QualificationGraph) Add(competition *Competition) error {
	if len(competition.Teams) == 0 {
		logging.WithCompetition(competition.String()).Warn("Skipping competition without resolved teams")
		g.skipped = append(g.skipped, competition)
		return nil
	}

	if err := g.AddVertex(competition); err != nil {
		return err
	}

	for _, other := range g.competitions {
		if _, err := g.maybeAddSubCompetition(competition, other); err != nil {
			return err
		}
		if _, err := g.maybeAddSubCompetition(other, competition); err != nil {
			return err
		}
	}

	g.competitions = append(g.competitions, competition)

	return nil
}

// Links the sub competition to the parent when the parent
// is a qualification for it. Returns true when the link was made.
func (g *QualificationGraph) maybeAddSubCompetition(parent, sub *Competition) (bool, error) {
	if parent == sub || !parent.IsQualificationFor(sub) {
		return false, nil
	}

	err := g.AddEdge(parent, sub)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	logging.WithCompetition(parent.String()).
		WithField("sub_competition", sub.String()).
		Info("Linked sub-competition")

	return true, nil
}

// Checks that no two competitions qualify for each other.
// This happens when two competitions have the same set of teams.
func (g *QualificationGraph) Validate() error {
	for i, a := range g.competitions {
		for _, b := range g.competitions[i+1:] {
			if g.HasEdge(a, b) && g.HasEdge(b, a) {
				return fmt.Errorf("%w: %v and %v", ErrQualificationCycle, a, b)
			}
		}
	}

	_, err := graph.StableTopologicalSort(g.Graph, func(a, b int) bool { return a < b })
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQualificationCycle, err)
	}

	return nil
}

// Returns all competitions in the order they were added
func (g *QualificationGraph) Competitions() []*Competition {
	return g.competitions
}

// Returns the competitions that were not added because none
// of their teams could be resolved
func (g *QualificationGraph) Skipped() []*Competition {
	return g.skipped
}

// Returns true when the competition has a qualification competition
func (g *QualificationGraph) IsSubCompetition(competition *Competition) bool {
	return len(g.GetDependencies(competition)) > 0
}

// Returns the competitions that are not a sub-competition of another
// in the order they were added
func (g *QualificationGraph) Roots() []*Competition {
	roots := make([]*Competition, 0, len(g.competitions))
	for _, c := range g.competitions {
		if !g.IsSubCompetition(c) {
			roots = append(roots, c)
		}
	}
	return roots
}

// Returns the competitions that the given competition qualifies for
// in the order they were added
func (g *QualificationGraph) SubCompetitions(competition *Competition) []*Competition {
	subs := g.GetDependants(competition)
	slices.SortFunc(subs, func(a, b *Competition) int {
		return cmp.Compare(g.position(a), g.position(b))
	})
	return subs
}

// Returns the competitions that qualify for the given competition
func (g *QualificationGraph) Qualifications(competition *Competition) []*Competition {
	quals := g.GetDependencies(competition)
	slices.SortFunc(quals, func(a, b *Competition) int {
		return cmp.Compare(g.position(a), g.position(b))
	})
	return quals
}

func (g *QualificationGraph) position(competition *Competition) int {
	return slices.Index(g.competitions, competition)
}

func NewQualificationGraph() *QualificationGraph {
	dependencyGraph := DependencyGraph[*Competition]{
		Graph: graph.New(getNodeId[*Competition], graph.Directed()),
	}
	return &QualificationGraph{DependencyGraph: dependencyGraph}
}
