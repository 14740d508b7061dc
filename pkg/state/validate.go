package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/murder-house/pkg/house"
)

// ErrInvalidState marks a stored session that breaks the house invariants.
var ErrInvalidState = errors.New("invalid game state")

// Validate checks a session against the house invariants: the fixed
// topology, a single crime scene, a murderer among the NPCs, and every item
// in exactly one place. All problems found are reported together.
func (gs *GameState) Validate() error {
	if gs.House == nil || gs.Case == nil {
		return fmt.Errorf("%w: house or case is missing", ErrInvalidState)
	}
	if len(gs.House.Rooms) != house.RoomCount {
		return fmt.Errorf("%w: expected %d rooms, got %d", ErrInvalidState, house.RoomCount, len(gs.House.Rooms))
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	descriptions := make([]string, len(gs.House.Rooms))
	for i, r := range gs.House.Rooms {
		descriptions[i] = r.Description
	}
	ref, err := house.BuildIcosahedron(descriptions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	scenes := 0
	npcs := make(map[string]int)
	items := make(map[string]int)
	for i, r := range gs.House.Rooms {
		if r.ID != i {
			add("room %d has id %d", i, r.ID)
		}
		if !slices.Equal(r.Neighbors, ref.Rooms[i].Neighbors) {
			add("room %d neighbors %v, want %v", i, r.Neighbors, ref.Rooms[i].Neighbors)
		}
		if r.IsCrimeScene {
			scenes++
			if i != gs.Case.CrimeScene {
				add("room %d is flagged as crime scene, case says %d", i, gs.Case.CrimeScene)
			}
		}
		for _, n := range r.NPCs {
			npcs[n]++
		}
		for _, it := range r.Items {
			items[it]++
		}
	}
	if scenes != 1 {
		add("expected exactly one crime scene, got %d", scenes)
	}

	for n, count := range npcs {
		if count > 1 {
			add("NPC %q appears %d times", n, count)
		}
	}
	if npcs[gs.Case.Murderer] == 0 {
		add("murderer %q is not in any room", gs.Case.Murderer)
	}

	for _, it := range gs.Inventory {
		items[it]++
	}
	for it, count := range items {
		if count > 1 {
			add("item %q is in %d places", it, count)
		}
	}
	if items[gs.Case.ReportItem] == 0 {
		add("report item %q is neither in a room nor carried", gs.Case.ReportItem)
	}

	if _, ok := gs.House.Room(gs.CurrentRoom); !ok {
		add("current room %d does not exist", gs.CurrentRoom)
	} else if !gs.Visited[gs.CurrentRoom] {
		add("current room %d is not marked visited", gs.CurrentRoom)
	}
	if !gs.Visited[house.StartRoom] {
		add("start room is not marked visited")
	}
	for id := range gs.Visited {
		if _, ok := gs.House.Room(id); !ok {
			add("visited room %d does not exist", id)
		}
	}

	if gs.Outcome != OutcomeActive && gs.Outcome != OutcomeWon {
		add("unknown outcome %q", gs.Outcome)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidState, errors.Join(errs...))
	}
	return nil
}
