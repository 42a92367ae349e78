package directory

import (
	"context"
	"fmt"

	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/sirupsen/logrus"
)

// The Registry fills the player cache with the registered
// players of an export.
type Registry struct {
	cache    *Cache
	resolver Resolver
}

func NewRegistry(cache *Cache, resolver Resolver) *Registry {
	return &Registry{
		cache:    cache,
		resolver: resolver,
	}
}

// Registers the player with the given export id under its license.
//
// Returns true when the player was newly added to the cache.
// The id 0 and ids that are already cached are skipped.
// Players that can't be resolved or have an incomplete name
// are skipped as well. An error is only returned when the
// cache fails.
func (r *Registry) Register(ctx context.Context, id, license uint64) (bool, error) {
	if id == 0 {
		return false, nil
	}

	cached, err := r.cache.Contains(ctx, id)
	if err != nil {
		return false, fmt.Errorf("checking player %v: %w", id, err)
	}
	if cached {
		return false, nil
	}

	log := logging.WithPlayer(id).WithField("license", license)

	player, err := r.resolver.Resolve(license)
	if err != nil {
		log.WithError(err).Debug("Player could not be resolved")
		return false, nil
	}
	if player.FirstName == "" || player.LastName == "" {
		log.WithError(ErrEmptyName).Debug("Player skipped")
		return false, nil
	}

	if err := r.cache.Put(ctx, id, player); err != nil {
		return false, fmt.Errorf("caching player %v: %w", id, err)
	}

	log.WithFields(logrus.Fields{
		"firstName": player.FirstName,
		"lastName":  player.LastName,
	}).Info("Player registered")

	return true, nil
}

// Returns all registered players as an in-memory directory
func (r *Registry) Directory(ctx context.Context) (MapDirectory, error) {
	return r.cache.Snapshot(ctx)
}
