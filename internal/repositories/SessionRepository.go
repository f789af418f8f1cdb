package repositories

import (
	"context"
	"errors"
	"fmt"

	"temperature-dashboard/config"
	"temperature-dashboard/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// UpdateFunc derives the next state of a session from its current one.
// Returning an error aborts the update and leaves the stored state unchanged.
type UpdateFunc func(state models.DashboardState) (models.DashboardState, error)

// SessionRepository stores one DashboardState per browser session.
// Update must apply fn atomically with respect to other updates of the same
// session.
type SessionRepository interface {
	Create(ctx context.Context, id string, state models.DashboardState) error
	Get(ctx context.Context, id string) (models.DashboardState, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (models.DashboardState, error)
	Delete(ctx context.Context, id string) error
	// Sweep removes expired sessions and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
}

func InitSessionRepository(ctx context.Context, cfg *config.Config) (SessionRepository, func() error, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := ConnectRedis(ctx, cfg.Session.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisSessionRepository(client, cfg.SessionTTL()), client.Close, nil
	case config.SessionStoreMemory, "":
		return NewMemorySessionRepository(cfg.SessionTTL()), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
