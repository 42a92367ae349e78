package ingest

import (
	"context"
	"fmt"

	"github.com/ezBadminton/fastimport/core"
	"github.com/ezBadminton/fastimport/directory"
	"github.com/ezBadminton/fastimport/internal/logging"
)

// A player of the federation export. The license
// resolves the name through the player registry.
type FastPlayer struct {
	PlayerId uint64 `yaml:"playerId"`
	License  uint64 `yaml:"license"`
}

type FastGame struct {
	Number int `yaml:"number"`
	Score1 int `yaml:"score1"`
	Score2 int `yaml:"score2"`
}

type FastMatch struct {
	Team1Id uint64     `yaml:"team1"`
	Team2Id uint64     `yaml:"team2"`
	Number  int        `yaml:"number"`
	Games   []FastGame `yaml:"games"`
}

type FastRanking struct {
	TeamId uint64 `yaml:"team"`
	Rank   int    `yaml:"rank"`
}

type FastPhase struct {
	Type     string        `yaml:"type"`
	Rankings []FastRanking `yaml:"rankings"`
	Matches  []FastMatch   `yaml:"matches"`
}

type FastTeam struct {
	Id        uint64 `yaml:"id"`
	Player1Id uint64 `yaml:"player1"`
	Player2Id uint64 `yaml:"player2"`
}

type FastCompetition struct {
	Type   string      `yaml:"type"`
	Name   string      `yaml:"name"`
	Sex    string      `yaml:"sex"`
	Teams  []FastTeam  `yaml:"teams"`
	Phases []FastPhase `yaml:"phases"`
}

type FastTournament struct {
	Name         string            `yaml:"name"`
	Competitions []FastCompetition `yaml:"competitions"`
}

// The FastExport is the export of the federation's
// competition management platform
type FastExport struct {
	RegisteredPlayers []FastPlayer     `yaml:"registeredPlayers"`
	Tournaments       []FastTournament `yaml:"tournaments"`
}

func (e *FastExport) Format() string {
	return FormatFast
}

// Returns the competitions of all tournaments in export order
func (e *FastExport) Competitions() []core.RawCompetition {
	competitions := make([]core.RawCompetition, 0)
	for _, tournament := range e.Tournaments {
		for _, competition := range tournament.Competitions {
			competitions = append(competitions, competition.raw())
		}
	}
	return competitions
}

// Registers all players of the export and returns the
// filled directory
func (e *FastExport) Players(ctx context.Context, registry *directory.Registry) (core.PlayerDirectory, error) {
	if registry == nil {
		return nil, fmt.Errorf("the %v format needs a player registry", FormatFast)
	}

	added := 0
	for _, player := range e.RegisteredPlayers {
		ok, err := registry.Register(ctx, player.PlayerId, player.License)
		if err != nil {
			return nil, err
		}
		if ok {
			added++
		}
	}

	logging.GetLogger().WithField("added", added).Info("Registered players")

	return registry.Directory(ctx)
}

func (c *FastCompetition) raw() core.RawCompetition {
	raw := core.RawCompetition{
		Name:     c.Name,
		Type:     c.Type,
		Category: c.Sex,
		Teams:    make([]core.RawTeam, 0, len(c.Teams)),
		Phases:   make([]core.RawPhase, 0, len(c.Phases)),
	}

	for _, team := range c.Teams {
		raw.Teams = append(raw.Teams, core.RawTeam{
			Id:        team.Id,
			Player1Id: team.Player1Id,
			Player2Id: team.Player2Id,
		})
	}

	for _, phase := range c.Phases {
		raw.Phases = append(raw.Phases, phase.raw())
	}

	return raw
}

func (p *FastPhase) raw() core.RawPhase {
	raw := core.RawPhase{
		Type:     p.Type,
		Rankings: make([]core.RawRanking, 0, len(p.Rankings)),
		Matches:  make([]core.RawMatch, 0, len(p.Matches)),
	}

	for _, ranking := range p.Rankings {
		raw.Rankings = append(raw.Rankings, core.RawRanking{
			TeamId: ranking.TeamId,
			Rank:   ranking.Rank,
		})
	}

	for _, match := range p.Matches {
		games := make([]core.RawGame, 0, len(match.Games))
		for _, game := range match.Games {
			games = append(games, core.RawGame{Score1: game.Score1, Score2: game.Score2})
		}
		raw.Matches = append(raw.Matches, core.RawMatch{
			Team1Id: match.Team1Id,
			Team2Id: match.Team2Id,
			Number:  match.Number,
			Games:   games,
		})
	}

	return raw
}
