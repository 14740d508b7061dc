package house

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptions() []string {
	descs := make([]string, RoomCount)
	for i := range descs {
		descs[i] = fmt.Sprintf("Room %d", i+1)
	}
	return descs
}

func TestBuildIcosahedron_Topology(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)
	require.Len(t, g.Rooms, RoomCount)

	for _, r := range g.Rooms {
		assert.Len(t, r.Neighbors, Degree, "room %d degree", r.ID)
	}
	assert.Equal(t, EdgeCount, g.EdgeCount())
}

func TestBuildIcosahedron_Symmetric(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)

	for _, r := range g.Rooms {
		for _, n := range r.Neighbors {
			assert.Contains(t, g.Rooms[n].Neighbors, r.ID, "edge %d-%d is not symmetric", r.ID, n)
			assert.NotEqual(t, r.ID, n, "self loop on room %d", r.ID)
		}
	}
}

func TestBuildIcosahedron_Connected(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)

	for start := 0; start < RoomCount; start++ {
		assert.Len(t, g.Reachable(start), RoomCount, "BFS from room %d", start)
	}
}

func TestBuildIcosahedron_NeighborOrder(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, g.Rooms[0].Neighbors)
	assert.Equal(t, []int{0, 2, 5, 6, 7}, g.Rooms[1].Neighbors)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, g.Rooms[11].Neighbors)
}

func TestBuildIcosahedron_Deterministic(t *testing.T) {
	a, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)

	other := testDescriptions()
	for i := range other {
		other[i] = "Haunted " + other[i]
	}
	b, err := BuildIcosahedron(other)
	require.NoError(t, err)

	for i := range a.Rooms {
		assert.Equal(t, a.Rooms[i].Neighbors, b.Rooms[i].Neighbors)
	}
	assert.Equal(t, "Haunted Room 3", b.Rooms[2].Description)
}

func TestBuildIcosahedron_WrongCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"empty", 0},
		{"too few", 11},
		{"too many", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildIcosahedron(make([]string, tt.count))
			if !errors.Is(err, ErrGraphConstruction) {
				t.Fatalf("expected ErrGraphConstruction, got %v", err)
			}
			if g != nil {
				t.Error("expected no graph on failure")
			}
		})
	}
}

func TestGraph_Neighbor(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)

	tests := []struct {
		choice int
		want   int
		ok     bool
	}{
		{1, 1, true},
		{2, 2, true},
		{5, 5, true},
		{0, 0, false},
		{6, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := g.Neighbor(0, tt.choice)
		assert.Equal(t, tt.ok, ok, "choice %d", tt.choice)
		if tt.ok {
			assert.Equal(t, tt.want, got, "choice %d", tt.choice)
		}
	}

	_, ok := g.Neighbor(42, 1)
	assert.False(t, ok, "unknown room should not resolve")
}

func TestRoom_RemoveItem(t *testing.T) {
	r := Room{Items: []string{"Candlestick", "Rope", "Candlestick"}}

	assert.True(t, r.RemoveItem("Candlestick"))
	assert.Equal(t, []string{"Rope", "Candlestick"}, r.Items)
	assert.False(t, r.RemoveItem("Wrench"))
	assert.False(t, r.RemoveItem("rope"), "matching is exact")
}

func TestGraph_Clone(t *testing.T) {
	g, err := BuildIcosahedron(testDescriptions())
	require.NoError(t, err)
	g.Rooms[3].Items = []string{"Rope"}

	c := g.Clone()
	c.Rooms[3].RemoveItem("Rope")
	c.Rooms[3].Neighbors[0] = 99

	assert.Equal(t, []string{"Rope"}, g.Rooms[3].Items)
	assert.NotEqual(t, 99, g.Rooms[3].Neighbors[0])
}
