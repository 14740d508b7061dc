package state

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/murder-house/pkg/house"
)

// Outcome is the win state of a session.
type Outcome string

const (
	OutcomeActive Outcome = "active"
	OutcomeWon    Outcome = "won"
)

// GameState is one player's progress through a house.
// House carries the mutable room contents; its topology never changes.
type GameState struct {
	ID          uuid.UUID         `json:"id"`
	PlayerName  string            `json:"player_name,omitempty"`
	Theme       string            `json:"theme,omitempty"`
	House       *house.Graph      `json:"house"`
	Case        *house.MurderCase `json:"case"`
	CurrentRoom int               `json:"current_room"`
	Inventory   []string          `json:"inventory"`
	Visited     map[int]bool      `json:"visited"`
	Outcome     Outcome           `json:"outcome"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewGameState starts a player in room 0 with an empty inventory.
func NewGameState(theme, playerName string, g *house.Graph, mc *house.MurderCase) *GameState {
	now := time.Now()
	return &GameState{
		ID:          uuid.New(),
		PlayerName:  playerName,
		Theme:       theme,
		House:       g,
		Case:        mc,
		CurrentRoom: house.StartRoom,
		Inventory:   make([]string, 0),
		Visited:     map[int]bool{house.StartRoom: true},
		Outcome:     OutcomeActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone deep-copies the state so a transition can be built up and then
// either committed or dropped.
func (gs *GameState) Clone() *GameState {
	c := *gs
	if gs.House != nil {
		c.House = gs.House.Clone()
	}
	if gs.Case != nil {
		mc := *gs.Case
		c.Case = &mc
	}
	c.Inventory = slices.Clone(gs.Inventory)
	c.Visited = maps.Clone(gs.Visited)
	return &c
}

// Room returns the room the player is standing in.
func (gs *GameState) Room() *house.Room {
	r, _ := gs.House.Room(gs.CurrentRoom)
	return r
}

// HasItem reports whether the player is carrying the named item.
func (gs *GameState) HasItem(name string) bool {
	return slices.Contains(gs.Inventory, name)
}

// VisitedRooms returns the visited room ids in ascending order.
func (gs *GameState) VisitedRooms() []int {
	ids := make([]int, 0, len(gs.Visited))
	for id, ok := range gs.Visited {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (gs *GameState) IsWon() bool {
	return gs.Outcome == OutcomeWon
}
