// Package directory resolves the player ids of an export to players.
//
// The players are kept in a persistent Cache so they only have
// to be resolved once. Before a tournament is built the cache is
// loaded into an in-memory MapDirectory.
package directory

import "github.com/ezBadminton/fastimport/core"

// A MapDirectory is a fully populated in-memory PlayerDirectory
type MapDirectory map[uint64]core.Player

func (d MapDirectory) Lookup(id uint64) (core.Player, bool) {
	player, ok := d[id]
	return player, ok
}

var _ core.PlayerDirectory = MapDirectory{}
