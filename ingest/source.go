// Package ingest converts the supported export formats into
// the raw competitions of the core model.
package ingest

import (
	"context"
	"errors"

	"github.com/ezBadminton/fastimport/core"
	"github.com/ezBadminton/fastimport/directory"
)

var (
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrMissingSection = errors.New("the snapshot has no section for its format")
)

const (
	FormatFast  = "fast"
	FormatCoral = "coral"
)

// A Source is one decoded export
type Source interface {
	Format() string

	// The competitions in the order of the export
	Competitions() []core.RawCompetition

	// Returns the directory that resolves the player ids of
	// the competitions. Sources that reference registered
	// players fill the registry first.
	Players(ctx context.Context, registry *directory.Registry) (core.PlayerDirectory, error)
}
