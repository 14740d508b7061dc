package house

import (
	"errors"
	"fmt"
	"slices"
)

const (
	RoomCount = 12 // vertices of the icosahedron
	EdgeCount = 30
	Degree    = 5 // neighbors per room
	StartRoom = 0 // every session begins here
)

// ErrGraphConstruction is returned when the house cannot be built from the
// supplied room descriptions.
var ErrGraphConstruction = errors.New("graph construction failed")

// Edges is the fixed icosahedron edge table. Neighbor order for every room is
// the order in which its edges appear here, so room 0 sees 1,2,3,4,5.
var Edges = [EdgeCount][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
	{1, 2}, {1, 5}, {1, 6}, {1, 7},
	{2, 3}, {2, 7}, {2, 8},
	{3, 4}, {3, 8}, {3, 9},
	{4, 5}, {4, 9}, {4, 10},
	{5, 6}, {5, 10},
	{6, 7}, {6, 10}, {6, 11},
	{7, 8}, {7, 11},
	{8, 9}, {8, 11},
	{9, 10}, {9, 11},
	{10, 11},
}

// Room is a single vertex of the house.
type Room struct {
	ID           int      `json:"id"`
	Description  string   `json:"description"`
	Neighbors    []int    `json:"neighbors"`
	NPCs         []string `json:"npcs,omitempty"`
	Items        []string `json:"items,omitempty"`
	IsCrimeScene bool     `json:"is_crime_scene,omitempty"`
}

// HasItem reports whether the named item is lying in the room.
func (r *Room) HasItem(name string) bool {
	return slices.Contains(r.Items, name)
}

// RemoveItem takes the first item matching name out of the room.
func (r *Room) RemoveItem(name string) bool {
	idx := slices.Index(r.Items, name)
	if idx < 0 {
		return false
	}
	r.Items = slices.Delete(r.Items, idx, idx+1)
	return true
}

// Graph is the house: twelve rooms wired as an icosahedron. Rooms are
// addressed by index; the adjacency lists never change after construction.
type Graph struct {
	Rooms []Room `json:"rooms"`
}

// BuildIcosahedron wires twelve rooms from the static edge table.
// The topology is identical for every game; only descriptions vary.
func BuildIcosahedron(descriptions []string) (*Graph, error) {
	if len(descriptions) != RoomCount {
		return nil, fmt.Errorf("%w: expected %d room descriptions, got %d",
			ErrGraphConstruction, RoomCount, len(descriptions))
	}

	g := &Graph{Rooms: make([]Room, RoomCount)}
	for i, desc := range descriptions {
		g.Rooms[i] = Room{
			ID:          i,
			Description: desc,
			Neighbors:   make([]int, 0, Degree),
		}
	}
	for _, e := range Edges {
		a, b := e[0], e[1]
		g.Rooms[a].Neighbors = append(g.Rooms[a].Neighbors, b)
		g.Rooms[b].Neighbors = append(g.Rooms[b].Neighbors, a)
	}
	return g, nil
}

// Room returns the room with the given id.
func (g *Graph) Room(id int) (*Room, bool) {
	if id < 0 || id >= len(g.Rooms) {
		return nil, false
	}
	return &g.Rooms[id], true
}

// Neighbor resolves a 1-based choice from a room's neighbor list.
func (g *Graph) Neighbor(roomID, choice int) (int, bool) {
	room, ok := g.Room(roomID)
	if !ok || choice < 1 || choice > len(room.Neighbors) {
		return 0, false
	}
	return room.Neighbors[choice-1], true
}

// EdgeCount counts undirected edges from the adjacency lists.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, r := range g.Rooms {
		total += len(r.Neighbors)
	}
	return total / 2
}

// Reachable returns every room id reachable from start, in BFS order.
func (g *Graph) Reachable(start int) []int {
	if _, ok := g.Room(start); !ok {
		return nil
	}
	seen := make([]bool, len(g.Rooms))
	seen[start] = true
	order := []int{start}
	for i := 0; i < len(order); i++ {
		for _, n := range g.Rooms[order[i]].Neighbors {
			if !seen[n] {
				seen[n] = true
				order = append(order, n)
			}
		}
	}
	return order
}

// CrimeScene returns the id of the flagged room, or -1 before placement.
func (g *Graph) CrimeScene() int {
	for _, r := range g.Rooms {
		if r.IsCrimeScene {
			return r.ID
		}
	}
	return -1
}

// LocateItem finds the room currently holding the named item.
func (g *Graph) LocateItem(name string) (int, bool) {
	for _, r := range g.Rooms {
		if r.HasItem(name) {
			return r.ID, true
		}
	}
	return -1, false
}

// AllItems lists every item lying in any room, in room order.
func (g *Graph) AllItems() []string {
	var items []string
	for _, r := range g.Rooms {
		items = append(items, r.Items...)
	}
	return items
}

// Clone returns a deep copy, so a pending transition can be discarded
// without touching the original.
func (g *Graph) Clone() *Graph {
	c := &Graph{Rooms: make([]Room, len(g.Rooms))}
	for i, r := range g.Rooms {
		c.Rooms[i] = Room{
			ID:           r.ID,
			Description:  r.Description,
			Neighbors:    slices.Clone(r.Neighbors),
			NPCs:         slices.Clone(r.NPCs),
			Items:        slices.Clone(r.Items),
			IsCrimeScene: r.IsCrimeScene,
		}
	}
	return c
}
