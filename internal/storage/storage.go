package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/murder-house/pkg/state"
)

// ErrSessionNotFound is returned when no game state is stored under an id,
// either because it never existed or because it expired.
var ErrSessionNotFound = errors.New("session not found")

// Storage persists game sessions and serializes turns on them.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// GameState operations
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// Per-session lock. AcquireLock reports false when another owner holds
	// it. ReleaseLock only releases a lock held by owner.
	AcquireLock(ctx context.Context, id uuid.UUID, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, id uuid.UUID, owner string) error
}
