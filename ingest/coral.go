package ingest

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/ezBadminton/fastimport/core"
	"github.com/ezBadminton/fastimport/directory"
	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/sirupsen/logrus"
)

type CoralTournament struct {
	Name         string `yaml:"name"`
	Organization string `yaml:"organization"`
}

// A standing lists the codes of the players that share a rank
type CoralStanding struct {
	Rank    int      `yaml:"rank"`
	Players []string `yaml:"players"`
}

// The winner is 1 for the home and 2 for the away team.
// Unfinished and drawn matches have no winner.
type CoralMatch struct {
	Number int      `yaml:"number"`
	Round  int      `yaml:"round"`
	Group  int      `yaml:"group"`
	Home   []string `yaml:"home"`
	Away   []string `yaml:"away"`
	Winner *int     `yaml:"winner"`
}

type CoralPhase struct {
	Name      string          `yaml:"name"`
	System    string          `yaml:"system"`
	Stage     int             `yaml:"stage"`
	Matches   []CoralMatch    `yaml:"matches"`
	Standings []CoralStanding `yaml:"standings"`
}

type CoralCompetition struct {
	Name      string          `yaml:"name"`
	Type      string          `yaml:"type"`
	Category  string          `yaml:"category"`
	Phases    []CoralPhase    `yaml:"phases"`
	Standings []CoralStanding `yaml:"standings"`
}

type CoralPlayer struct {
	Name    string `yaml:"name"`
	Code    string `yaml:"code"`
	License string `yaml:"license"`
}

// The CoralExport is the export of an organizer's tournament
// software. Players are referenced by their code and carry
// their names, so no registry is needed.
type CoralExport struct {
	Tournament      CoralTournament    `yaml:"tournament"`
	PlayerList      []CoralPlayer      `yaml:"players"`
	CompetitionList []CoralCompetition `yaml:"competitions"`
}

func (e *CoralExport) Format() string {
	return FormatCoral
}

// Returns the numeric id of each player code.
// Ids are assigned in the order of the player list starting at 1.
func (e *CoralExport) playerIds() map[string]uint64 {
	ids := make(map[string]uint64, len(e.PlayerList))
	for _, player := range e.PlayerList {
		if _, ok := ids[player.Code]; ok {
			continue
		}
		ids[player.Code] = uint64(len(ids) + 1)
	}
	return ids
}

func (e *CoralExport) Players(ctx context.Context, registry *directory.Registry) (core.PlayerDirectory, error) {
	ids := e.playerIds()
	players := make(directory.MapDirectory, len(ids))
	for _, player := range e.PlayerList {
		id := ids[player.Code]
		if _, ok := players[id]; ok {
			continue
		}
		resolved := directory.SplitName(player.Name)
		resolved.License = player.License
		players[id] = resolved
	}
	return players, nil
}

func (e *CoralExport) Competitions() []core.RawCompetition {
	ids := e.playerIds()
	competitions := make([]core.RawCompetition, 0, len(e.CompetitionList))
	for _, competition := range e.CompetitionList {
		competitions = append(competitions, competition.raw(ids))
	}
	return competitions
}

// The teams of a coral competition are identified by the
// codes of their players
type coralTeams struct {
	playerIds map[string]uint64
	ids       map[string]uint64
	teams     []core.RawTeam
}

// Returns the team id of the given player codes and registers
// the team on first sight. The order of the codes does not matter.
// Unknown codes map to the player id 0 which no directory resolves.
func (t *coralTeams) id(codes []string) uint64 {
	sorted := slices.Clone(codes)
	slices.Sort(sorted)
	key := strings.Join(sorted, "\t")
	if id, ok := t.ids[key]; ok {
		return id
	}

	id := uint64(len(t.teams) + 1)
	t.ids[key] = id

	team := core.RawTeam{Id: id}
	if len(codes) > 0 {
		team.Player1Id = t.playerIds[codes[0]]
	}
	if len(codes) > 1 {
		team.Player2Id = t.playerIds[codes[1]]
	}
	if len(codes) > 2 {
		logging.GetLogger().WithField("players", codes).Warn("Team has more than two players")
	}
	t.teams = append(t.teams, team)

	return id
}

func (t *coralTeams) rankings(standings []CoralStanding) []core.RawRanking {
	rankings := make([]core.RawRanking, 0, len(standings))
	for _, standing := range standings {
		rankings = append(rankings, core.RawRanking{
			TeamId: t.id(standing.Players),
			Rank:   standing.Rank,
		})
	}
	return rankings
}

func (c *CoralCompetition) raw(playerIds map[string]uint64) core.RawCompetition {
	teams := &coralTeams{
		playerIds: playerIds,
		ids:       make(map[string]uint64),
	}

	phases := slices.Clone(c.Phases)
	slices.SortStableFunc(phases, func(a, b CoralPhase) int {
		return cmp.Compare(a.Stage, b.Stage)
	})

	raw := core.RawCompetition{
		Name:     c.Name,
		Type:     c.Type,
		Category: c.Category,
		Phases:   make([]core.RawPhase, 0, len(phases)),
	}

	for _, phase := range phases {
		standings := phase.Standings
		// Phases without own standings use the final standings
		if len(standings) == 0 {
			standings = c.Standings
		}

		rawPhase := core.RawPhase{
			Type:     phase.System,
			Rankings: teams.rankings(standings),
			Matches:  make([]core.RawMatch, 0, len(phase.Matches)),
		}

		for _, match := range phase.Matches {
			rawPhase.Matches = append(rawPhase.Matches, core.RawMatch{
				Team1Id: teams.id(match.Home),
				Team2Id: teams.id(match.Away),
				Number:  match.Number,
				Depth:   match.Round,
				Games:   winnerGames(match.Winner),
			})
		}

		raw.Phases = append(raw.Phases, rawPhase)
	}

	if len(phases) == 0 && len(c.Standings) > 0 {
		raw.Phases = append(raw.Phases, core.RawPhase{
			Type:     "standings",
			Rankings: teams.rankings(c.Standings),
		})
	}

	raw.Teams = teams.teams

	logging.WithCompetition(c.Name).WithFields(logrus.Fields{
		"teams":  len(raw.Teams),
		"phases": len(raw.Phases),
	}).Debug("Converted coral competition")

	return raw
}

// Coral only exports the winner of a match. It is
// represented as a single game won 1:0.
func winnerGames(winner *int) []core.RawGame {
	if winner == nil {
		return nil
	}
	switch *winner {
	case 1:
		return []core.RawGame{{Score1: 1, Score2: 0}}
	case 2:
		return []core.RawGame{{Score1: 0, Score2: 1}}
	default:
		return nil
	}
}
