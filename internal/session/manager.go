// Package session runs game sessions on top of a Storage: it creates
// houses, serializes turns per session and adds narration to outcomes.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/murder-house/internal/logger"
	"github.com/jwebster45206/murder-house/internal/storage"
	"github.com/jwebster45206/murder-house/pkg/api"
	"github.com/jwebster45206/murder-house/pkg/house"
	"github.com/jwebster45206/murder-house/pkg/narrative"
	"github.com/jwebster45206/murder-house/pkg/state"
)

// ErrSessionBusy is returned when another turn holds the session lock for
// longer than the lock timeout.
var ErrSessionBusy = errors.New("session is busy")

const (
	DefaultLockTimeout = 5 * time.Second
	lockTTL            = 30 * time.Second
	lockPollInterval   = 25 * time.Millisecond
)

type Manager struct {
	store       storage.Storage
	gateway     narrative.Gateway
	logger      *slog.Logger
	lockTimeout time.Duration

	// seed returns the placement seed for a new session.
	seed func() uint64
}

func NewManager(store storage.Storage, gateway narrative.Gateway, lockTimeout time.Duration, logger *slog.Logger) *Manager {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Manager{
		store:       store,
		gateway:     gateway,
		logger:      logger,
		lockTimeout: lockTimeout,
		seed:        rand.Uint64,
	}
}

// StartSession builds and stores a new house. Only a house that could not be
// built fails the call; narration problems fall back to plain names and text.
func (m *Manager) StartSession(ctx context.Context, theme, playerName string) (uuid.UUID, string, error) {
	theme = strings.TrimSpace(theme)
	playerName = strings.TrimSpace(playerName)

	rooms, npcs, items, err := m.generateNames(ctx, theme)
	if err != nil {
		return uuid.Nil, "", err
	}

	g, err := house.BuildIcosahedron(rooms)
	if err != nil {
		m.logger.Error("Failed to build house", "theme", theme, "error", err)
		return uuid.Nil, "", err
	}

	seed := m.seed()
	mc, err := house.PlaceEntities(g, npcs, items, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to place entities: %w", err)
	}

	gs := state.NewGameState(theme, playerName, g, mc)
	log := logger.WithSessionID(m.logger, gs.ID)
	if err := m.store.SaveGameState(ctx, gs.ID, gs); err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to save new session: %w", err)
	}
	log.Info("Session started", "theme", theme, "seed", seed, "crime_scene", mc.CrimeScene)

	intro, err := m.gateway.GenerateIntro(ctx, playerName, theme)
	if err != nil {
		log.Warn("Intro narration unavailable, using fallback", "error", err)
		intro = narrative.FallbackIntro(playerName, theme)
	}
	return gs.ID, intro, nil
}

type nameList struct {
	category narrative.Category
	count    int
	names    []string
}

// generateNames asks for the three name lists at once. A list the gateway
// cannot supply is replaced by generic names.
func (m *Manager) generateNames(ctx context.Context, theme string) (rooms, npcs, items []string, err error) {
	lists := []*nameList{
		{category: narrative.CategoryRooms, count: house.RoomCount},
		{category: narrative.CategoryNPCs, count: house.NPCCount},
		{category: narrative.CategoryItems, count: house.ItemCount},
	}

	eg, egctx := errgroup.WithContext(ctx)
	for _, l := range lists {
		eg.Go(func() error {
			names, err := m.gateway.GenerateNames(egctx, l.category, l.count, theme)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				m.logger.Warn("Name generation unavailable, using fallback",
					"category", l.category, "error", err)
				names = narrative.FallbackNames(l.category, l.count)
			}
			l.names = names
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return lists[0].names, lists[1].names, lists[2].names, nil
}

// SendAction plays one turn. Rejected turns are not errors: they come back
// as a response with ErrorKind set and nothing stored. Errors are reserved
// for unknown sessions, a busy session and storage failures.
func (m *Manager) SendAction(ctx context.Context, id uuid.UUID, code string, params []string) (*api.ActionResponse, error) {
	log := logger.WithSessionID(m.logger, id)

	owner := uuid.NewString()
	if err := m.lock(ctx, id, owner); err != nil {
		return nil, err
	}
	t, err := m.playTurn(ctx, id, code, params)
	m.unlock(id, owner)
	if err != nil {
		return nil, err
	}

	if t.rejected != nil {
		log.Debug("Turn rejected", "action", code, "kind", state.ErrorKind(t.rejected))
		return &api.ActionResponse{
			Outcome:     state.PlayerMessage(t.rejected),
			CurrentRoom: t.state.DescribeRoom(),
			Won:         t.state.IsWon(),
			ErrorKind:   state.ErrorKind(t.rejected),
		}, nil
	}

	res := t.result
	log.Debug("Turn played", "action", res.Action, "room_id", res.RoomID, "won", res.Won)
	if res.Quit {
		log.Info("Session ended by player", "won", res.Won)
	}
	return &api.ActionResponse{
		Outcome:     m.narrate(ctx, t.state, res),
		CurrentRoom: t.state.DescribeRoom(),
		Won:         res.Won,
		Ended:       res.Quit,
	}, nil
}

type turn struct {
	state    *state.GameState // state after the turn
	result   *state.Result
	rejected error // a *state.TurnError
}

// playTurn runs under the session lock.
func (m *Manager) playTurn(ctx context.Context, id uuid.UUID, code string, params []string) (*turn, error) {
	gs, err := m.store.LoadGameState(ctx, id)
	if err != nil {
		return nil, err
	}

	act, err := state.ParseAction(code, params)
	if err != nil {
		return &turn{state: gs, rejected: err}, nil
	}

	next, res, err := state.Resolve(gs, act)
	if err != nil {
		return &turn{state: gs, rejected: err}, nil
	}

	if res.Quit {
		if err := m.store.DeleteGameState(ctx, id); err != nil {
			return nil, err
		}
	} else if next != gs {
		if err := m.store.SaveGameState(ctx, id, next); err != nil {
			return nil, fmt.Errorf("failed to save turn: %w", err)
		}
	}
	return &turn{state: next, result: res}, nil
}

// narrate replaces the plain outcome text of examine and interact with
// generated prose. Nothing here touches stored state.
func (m *Manager) narrate(ctx context.Context, gs *state.GameState, res *state.Result) string {
	switch res.Action {
	case state.ActionExamine:
		if len(res.Items) == 0 {
			return res.Message
		}
		lines := make([]string, len(res.Items))
		var eg errgroup.Group
		for i, item := range res.Items {
			eg.Go(func() error {
				text, err := m.gateway.DescribeItem(ctx, item, gs.Case.ReportItem, gs.Case.Murderer)
				if err != nil {
					m.logger.Warn("Item narration unavailable, using fallback", "item", item, "error", err)
					text = narrative.FallbackItem(item)
				}
				lines[i] = text
				return nil
			})
		}
		_ = eg.Wait()
		return strings.Join(lines, "\n")

	case state.ActionInteract:
		text, err := m.gateway.DescribeNPCInteraction(ctx, res.NPC, gs.Case.Murderer, gs.Case.ReportItem)
		if err != nil {
			m.logger.Warn("Interaction narration unavailable, using fallback", "npc", res.NPC, "error", err)
			return narrative.FallbackInteraction(res.NPC)
		}
		return text
	}
	return res.Message
}

// View renders a session without playing a turn.
func (m *Manager) View(ctx context.Context, id uuid.UUID) (*api.ViewResponse, error) {
	gs, err := m.store.LoadGameState(ctx, id)
	if err != nil {
		return nil, err
	}
	return &api.ViewResponse{
		SessionID:   gs.ID,
		CurrentRoom: gs.DescribeRoom(),
		Won:         gs.IsWon(),
		Visited:     gs.VisitedRooms(),
		Inventory:   gs.Inventory,
	}, nil
}

// End deletes a session. Unknown sessions yield storage.ErrSessionNotFound.
func (m *Manager) End(ctx context.Context, id uuid.UUID) error {
	owner := uuid.NewString()
	if err := m.lock(ctx, id, owner); err != nil {
		return err
	}
	defer m.unlock(id, owner)

	if _, err := m.store.LoadGameState(ctx, id); err != nil {
		return err
	}
	if err := m.store.DeleteGameState(ctx, id); err != nil {
		return err
	}
	logger.WithSessionID(m.logger, id).Info("Session ended")
	return nil
}

// lock polls for the session lock until lockTimeout runs out.
func (m *Manager) lock(ctx context.Context, id uuid.UUID, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()
	for {
		ok, err := m.store.AcquireLock(ctx, id, owner, lockTTL)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrSessionBusy
		case <-ticker.C:
		}
	}
}

// unlock uses its own context so a cancelled request still releases.
func (m *Manager) unlock(id uuid.UUID, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.ReleaseLock(ctx, id, owner); err != nil {
		logger.WithError(logger.WithSessionID(m.logger, id), err).Error("Failed to release session lock")
	}
}
