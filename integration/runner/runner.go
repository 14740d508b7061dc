package runner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/murder-house/pkg/api"
)

// Runner plays complete games against a running murder-house API.
type Runner struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
	Logger  func(format string, args ...any)
}

// NewRunner creates a new runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
		Timeout: 30 * time.Second,
	}
}

// Report summarizes a solved game.
type Report struct {
	SessionID   uuid.UUID
	Rooms       []string
	NPCs        []string
	Inventory   []string
	Murderer    string
	Accusations int
	Turns       int
	Duration    time.Duration
}

type game struct {
	r      *Runner
	client *api.Client
	id     uuid.UUID
	room   Room
	seen   map[string]bool
	report *Report
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger(format, args...)
	}
}

// Solve starts a session and plays it to a win without knowing the
// solution: it walks every room depth-first, takes every item it finds,
// then accuses each NPC it met until one accusation succeeds. The
// session is ended before returning.
func (r *Runner) Solve(ctx context.Context, theme, playerName string) (*Report, error) {
	start := time.Now()
	client := api.NewClient(r.BaseURL, r.Client)

	sctx, cancel := context.WithTimeout(ctx, r.Timeout)
	started, err := client.StartSession(sctx, theme, playerName)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	r.logf("Session %s started", started.SessionID)

	g := &game{
		r:      r,
		client: client,
		id:     started.SessionID,
		seen:   make(map[string]bool),
		report: &Report{SessionID: started.SessionID},
	}
	defer func() {
		ectx, cancel := context.WithTimeout(context.Background(), r.Timeout)
		defer cancel()
		if err := client.End(ectx, g.id); err != nil {
			r.logf("Failed to end session %s: %v", g.id, err)
		}
	}()

	view, err := client.View(ctx, g.id)
	if err != nil {
		return nil, fmt.Errorf("failed to view session: %w", err)
	}
	if g.room, err = ParseRoom(view.CurrentRoom); err != nil {
		return nil, err
	}

	if err := g.explore(ctx); err != nil {
		return g.report, err
	}
	if len(g.seen) != 12 {
		return g.report, fmt.Errorf("explored %d rooms, want 12", len(g.seen))
	}
	if err := g.accuse(ctx); err != nil {
		return g.report, err
	}

	g.report.Duration = time.Since(start)
	return g.report, nil
}

// explore collects the current room and every room reachable through
// unexplored exits, returning to the current room afterwards.
func (g *game) explore(ctx context.Context) error {
	here := g.room.Name
	g.seen[here] = true
	g.report.Rooms = append(g.report.Rooms, here)
	for _, npc := range g.room.NPCs {
		if !slices.Contains(g.report.NPCs, npc) {
			g.report.NPCs = append(g.report.NPCs, npc)
		}
	}
	for _, item := range g.room.Items {
		if err := g.take(ctx, item); err != nil {
			return err
		}
	}

	for {
		exit, ok := g.room.FirstUnexplored()
		if !ok {
			return nil
		}
		if err := g.move(ctx, exit); err != nil {
			return err
		}
		if !g.seen[g.room.Name] {
			if err := g.explore(ctx); err != nil {
				return err
			}
		}
		back, ok := g.room.ExitTo(here)
		if !ok {
			return fmt.Errorf("no way back from %q to %q", g.room.Name, here)
		}
		if err := g.move(ctx, back); err != nil {
			return err
		}
	}
}

func (g *game) accuse(ctx context.Context) error {
	for _, npc := range g.report.NPCs {
		resp, err := g.act(ctx, "6", npc)
		if err != nil {
			return err
		}
		g.report.Accusations++
		if resp.Won {
			g.report.Murderer = npc
			g.r.logf("Solved: %s after %d accusations", npc, g.report.Accusations)
			return nil
		}
	}
	return errors.New("no accusation succeeded")
}

func (g *game) take(ctx context.Context, item string) error {
	if _, err := g.act(ctx, "3", item); err != nil {
		return err
	}
	g.report.Inventory = append(g.report.Inventory, item)
	return nil
}

func (g *game) move(ctx context.Context, exit int) error {
	resp, err := g.act(ctx, "1", strconv.Itoa(exit))
	if err != nil {
		return err
	}
	room, err := ParseRoom(resp.CurrentRoom)
	if err != nil {
		return err
	}
	g.room = room
	return nil
}

// act sends one action and treats any rejected turn as a failure.
func (g *game) act(ctx context.Context, code, param string) (*api.ActionResponse, error) {
	actx, cancel := context.WithTimeout(ctx, g.r.Timeout)
	defer cancel()

	resp, err := g.client.SendAction(actx, g.id, code, []string{param})
	if err != nil {
		return nil, fmt.Errorf("action %s %q: %w", code, param, err)
	}
	g.report.Turns++
	if resp.ErrorKind != "" {
		return nil, fmt.Errorf("action %s %q rejected (%s): %s", code, param, resp.ErrorKind, resp.Outcome)
	}
	return resp, nil
}
