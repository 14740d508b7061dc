package main

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/murder-house/pkg/house"
	"github.com/jwebster45206/murder-house/pkg/narrative"
	"github.com/jwebster45206/murder-house/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, mutate func(gs *state.GameState)) string {
	t.Helper()
	g, err := house.BuildIcosahedron(narrative.FallbackNames(narrative.CategoryRooms, house.RoomCount))
	require.NoError(t, err)
	mc, err := house.PlaceEntities(g,
		narrative.FallbackNames(narrative.CategoryNPCs, house.NPCCount),
		narrative.FallbackNames(narrative.CategoryItems, house.ItemCount),
		rand.New(rand.NewPCG(3, 3)))
	require.NoError(t, err)
	gs := state.NewGameState("manor", "Marple", g, mc)
	if mutate != nil {
		mutate(gs)
	}

	data, err := json.Marshal(gs)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestValidateFile(t *testing.T) {
	gs, err := validateFile(writeSession(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "manor", gs.Theme)
}

func TestValidateFile_Invariants(t *testing.T) {
	path := writeSession(t, func(gs *state.GameState) {
		gs.House.Rooms[gs.Case.CrimeScene].IsCrimeScene = false
	})

	_, err := validateFile(path)
	assert.ErrorIs(t, err, state.ErrInvalidState)
}

func TestValidateDocument_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "{"},
		{"unknown field", `{"id":"8f1f4e4c-8c1e-4a5e-9c39-1b0c7ad0a9a1","turns":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateDocument([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestValidateFile_Missing(t *testing.T) {
	_, err := validateFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
