package state

import (
	"fmt"
	"slices"
	"time"
)

// Result describes what a resolved action did. It carries the facts a
// renderer or narrator needs; Message is the plain text fallback.
type Result struct {
	Action    ActionCode `json:"action"`
	RoomID    int        `json:"room_id"`
	Items     []string   `json:"items,omitempty"`     // examine: items in the room
	Inventory []string   `json:"inventory,omitempty"` // inventory: items held
	NPC       string     `json:"npc,omitempty"`       // interact: chosen NPC
	Taken     string     `json:"taken,omitempty"`
	Won       bool       `json:"won"`
	Murderer  string     `json:"murderer,omitempty"` // revealed only on a win
	Quit      bool       `json:"quit,omitempty"`
	Message   string     `json:"message"`
}

const incorrectAccusation = "Incorrect guess. Either the murderer or the item is wrong. Try again."

// Resolve applies one action to gs and returns the next state.
//
// gs itself is never modified. Mutating actions work on a clone; read-only
// actions return gs unchanged. On error the returned state is gs.
func Resolve(gs *GameState, act Action) (*GameState, *Result, error) {
	switch act.Code {
	case ActionMove:
		return resolveMove(gs, act.Index)
	case ActionExamine:
		return resolveExamine(gs)
	case ActionTake:
		return resolveTake(gs, act.Name)
	case ActionInventory:
		return resolveInventory(gs)
	case ActionInteract:
		return resolveInteract(gs, act.Index)
	case ActionAccuse:
		return resolveAccuse(gs, act.Name)
	case ActionQuit:
		return gs, &Result{
			Action:  ActionQuit,
			RoomID:  gs.CurrentRoom,
			Won:     gs.IsWon(),
			Quit:    true,
			Message: "You leave the house. Thanks for playing.",
		}, nil
	default:
		return gs, nil, turnError(ErrInvalidActionCode, "Invalid action. Please try again.")
	}
}

func resolveMove(gs *GameState, choice int) (*GameState, *Result, error) {
	target, ok := gs.House.Neighbor(gs.CurrentRoom, choice)
	if !ok {
		return gs, nil, turnError(ErrInvalidRoomIndex,
			"Invalid choice. Choose a room between 1 and %d.", len(gs.Room().Neighbors))
	}

	next := gs.Clone()
	next.CurrentRoom = target
	next.Visited[target] = true
	next.UpdatedAt = time.Now()

	return next, &Result{
		Action:  ActionMove,
		RoomID:  target,
		Won:     next.IsWon(),
		Message: "You move into the " + next.Room().Description + ".",
	}, nil
}

func resolveExamine(gs *GameState) (*GameState, *Result, error) {
	room := gs.Room()
	res := &Result{
		Action: ActionExamine,
		RoomID: gs.CurrentRoom,
		Items:  slices.Clone(room.Items),
		Won:    gs.IsWon(),
	}
	if len(room.Items) == 0 {
		res.Message = "There are no items to examine in this room."
	} else {
		res.Message = DescribeExamined(room.Items)
	}
	return gs, res, nil
}

func resolveTake(gs *GameState, name string) (*GameState, *Result, error) {
	if !gs.Room().HasItem(name) {
		return gs, nil, turnError(ErrItemNotFound, "No item named %s found in this room.", name)
	}

	next := gs.Clone()
	next.Room().RemoveItem(name)
	if !next.HasItem(name) {
		next.Inventory = append(next.Inventory, name)
	}
	next.UpdatedAt = time.Now()

	return next, &Result{
		Action:  ActionTake,
		RoomID:  next.CurrentRoom,
		Taken:   name,
		Won:     next.IsWon(),
		Message: "You take the " + name + ".",
	}, nil
}

func resolveInventory(gs *GameState) (*GameState, *Result, error) {
	return gs, &Result{
		Action:    ActionInventory,
		RoomID:    gs.CurrentRoom,
		Inventory: slices.Clone(gs.Inventory),
		Won:       gs.IsWon(),
		Message:   DescribeInventory(gs.Inventory),
	}, nil
}

func resolveInteract(gs *GameState, choice int) (*GameState, *Result, error) {
	npcs := gs.Room().NPCs
	if len(npcs) == 0 {
		return gs, nil, turnError(ErrInvalidNPCIndex, "There are no NPCs to interact with in this room.")
	}
	if choice < 1 || choice > len(npcs) {
		return gs, nil, turnError(ErrInvalidNPCIndex, "Invalid choice. Choose an NPC between 1 and %d.", len(npcs))
	}

	npc := npcs[choice-1]
	return gs, &Result{
		Action:  ActionInteract,
		RoomID:  gs.CurrentRoom,
		NPC:     npc,
		Won:     gs.IsWon(),
		Message: "You speak with " + npc + ".",
	}, nil
}

// resolveAccuse wins only when the named suspect is the murderer and the
// report item is in the inventory. A won game stays won.
func resolveAccuse(gs *GameState, guess string) (*GameState, *Result, error) {
	if gs.IsWon() {
		return gs, winResult(gs), nil
	}

	if guess != gs.Case.Murderer || !gs.HasItem(gs.Case.ReportItem) {
		return gs, &Result{
			Action:  ActionAccuse,
			RoomID:  gs.CurrentRoom,
			Message: incorrectAccusation,
		}, nil
	}

	next := gs.Clone()
	next.Outcome = OutcomeWon
	next.UpdatedAt = time.Now()
	return next, winResult(next), nil
}

func winResult(gs *GameState) *Result {
	return &Result{
		Action:   ActionAccuse,
		RoomID:   gs.CurrentRoom,
		Won:      true,
		Murderer: gs.Case.Murderer,
		Message: fmt.Sprintf("You correctly identified the murderer and the murder weapon! The murderer is %s and the murder weapon is %s!",
			gs.Case.Murderer, gs.Case.ReportItem),
	}
}
