package directory

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/ezBadminton/fastimport/core"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type cachedPlayer struct {
	Id        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	License   string `db:"license"`
}

// SQLite integers are signed. Export ids are stored with the
// same bits so ids above MaxInt64 survive the round trip.
func rowId(id uint64) int64 {
	return int64(id)
}

func exportId(id int64) uint64 {
	return uint64(id)
}

func (p *cachedPlayer) player() core.Player {
	return core.Player{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		License:   p.License,
	}
}

// The Cache is a persistent key-value store of resolved
// players keyed by their export id.
type Cache struct {
	db *sqlx.DB
}

// Opens the SQLite cache file at the given path and
// migrates it to the current schema.
func OpenCache(path string) (*Cache, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open player cache: %w", err)
	}

	cache, err := NewCache(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return cache, nil
}

// Creates a cache on an open database and migrates it
// to the current schema.
func NewCache(db *sqlx.DB) (*Cache, error) {
	// SQLite allows one writer and in-memory databases exist per connection
	db.SetMaxOpenConns(1)

	if err := runMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate player cache: %w", err)
	}

	return &Cache{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Returns the player with the given id. The bool is false
// when the player is not cached.
func (c *Cache) Get(ctx context.Context, id uint64) (core.Player, bool, error) {
	var cached cachedPlayer
	err := c.db.GetContext(ctx, &cached, "SELECT id, first_name, last_name, license FROM players WHERE id = ?", rowId(id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Player{}, false, nil
	}
	if err != nil {
		return core.Player{}, false, err
	}
	return cached.player(), true, nil
}

func (c *Cache) Contains(ctx context.Context, id uint64) (bool, error) {
	var count int
	err := c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM players WHERE id = ?", rowId(id))
	return count > 0, err
}

// Inserts or replaces the player with the given id
func (c *Cache) Put(ctx context.Context, id uint64, player core.Player) error {
	cached := cachedPlayer{
		Id:        rowId(id),
		FirstName: player.FirstName,
		LastName:  player.LastName,
		License:   player.License,
	}
	_, err := c.db.NamedExecContext(ctx, `INSERT OR REPLACE INTO players (id, first_name, last_name, license)
		VALUES (:id, :first_name, :last_name, :license)`, cached)
	return err
}

// Loads all cached players into a MapDirectory
func (c *Cache) Snapshot(ctx context.Context) (MapDirectory, error) {
	var cached []cachedPlayer
	err := c.db.SelectContext(ctx, &cached, "SELECT id, first_name, last_name, license FROM players ORDER BY id ASC")
	if err != nil {
		return nil, err
	}

	directory := make(MapDirectory, len(cached))
	for _, p := range cached {
		directory[exportId(p.Id)] = p.player()
	}

	return directory, nil
}
