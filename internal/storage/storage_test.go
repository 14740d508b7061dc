package storage

import (
	"math/rand/v2"
	"testing"

	"github.com/jwebster45206/murder-house/pkg/house"
	"github.com/jwebster45206/murder-house/pkg/narrative"
	"github.com/jwebster45206/murder-house/pkg/state"
	"github.com/stretchr/testify/require"
)

func newTestGameState(t *testing.T) *state.GameState {
	t.Helper()
	g, err := house.BuildIcosahedron(narrative.FallbackNames(narrative.CategoryRooms, house.RoomCount))
	require.NoError(t, err)
	mc, err := house.PlaceEntities(g,
		narrative.FallbackNames(narrative.CategoryNPCs, house.NPCCount),
		narrative.FallbackNames(narrative.CategoryItems, house.ItemCount),
		rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	return state.NewGameState("haunted manor", "Marple", g, mc)
}
