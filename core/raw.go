package core

// The raw records are the import-format independent shape of
// a tournament export. The ingest adapters produce them and the
// builders in this package turn them into the typed model.

// A team as it is registered for one competition.
// A zero Player2Id means the team is a single player.
type RawTeam struct {
	Id        uint64 `yaml:"id" json:"id"`
	Player1Id uint64 `yaml:"player1" json:"player1"`
	Player2Id uint64 `yaml:"player2,omitempty" json:"player2,omitempty"`
}

type RawRanking struct {
	TeamId uint64 `yaml:"team" json:"team"`
	Rank   int    `yaml:"rank" json:"rank"`
}

// The points of both teams in one game of a match
type RawGame struct {
	Score1 int `yaml:"score1" json:"score1"`
	Score2 int `yaml:"score2" json:"score2"`
}

type RawMatch struct {
	Team1Id uint64    `yaml:"team1" json:"team1"`
	Team2Id uint64    `yaml:"team2" json:"team2"`
	Number  int       `yaml:"number,omitempty" json:"number,omitempty"`
	Depth   int       `yaml:"depth,omitempty" json:"depth,omitempty"`
	Games   []RawGame `yaml:"games" json:"games"`
}

type RawPhase struct {
	Type     string       `yaml:"type" json:"type"`
	Rankings []RawRanking `yaml:"rankings" json:"rankings"`
	Matches  []RawMatch   `yaml:"matches,omitempty" json:"matches,omitempty"`
}

type RawCompetition struct {
	Name     string     `yaml:"name" json:"name"`
	Type     string     `yaml:"type" json:"type"`
	Category string     `yaml:"category,omitempty" json:"category,omitempty"`
	Teams    []RawTeam  `yaml:"teams" json:"teams"`
	Phases   []RawPhase `yaml:"phases" json:"phases"`
}
