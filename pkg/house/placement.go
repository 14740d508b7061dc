package house

import (
	"errors"
	"fmt"
)

const (
	NPCCount  = 5
	ItemCount = 8
)

// ErrPlacement is returned when there is nothing to draw a murderer or a
// report item from.
var ErrPlacement = errors.New("entity placement failed")

// MurderCase is the hidden solution of a game.
type MurderCase struct {
	Murderer   string `json:"murderer"`
	ReportItem string `json:"report_item"`
	CrimeScene int    `json:"crime_scene"`
}

// Source is the random source used for placement. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// PlaceEntities scatters NPCs and items uniformly across the rooms, flags one
// crime scene, and draws the murderer and the report item.
//
// Draw order is fixed (NPCs, items, crime scene, murderer, report item) so a
// seeded source always produces the same house.
func PlaceEntities(g *Graph, npcNames, itemNames []string, rng Source) (*MurderCase, error) {
	if g == nil || len(g.Rooms) == 0 {
		return nil, fmt.Errorf("%w: no rooms", ErrPlacement)
	}
	if len(npcNames) == 0 {
		return nil, fmt.Errorf("%w: no NPCs to choose a murderer from", ErrPlacement)
	}
	if len(itemNames) == 0 {
		return nil, fmt.Errorf("%w: no items to choose a report item from", ErrPlacement)
	}

	for _, npc := range npcNames {
		r := &g.Rooms[rng.IntN(len(g.Rooms))]
		r.NPCs = append(r.NPCs, npc)
	}
	for _, item := range itemNames {
		r := &g.Rooms[rng.IntN(len(g.Rooms))]
		r.Items = append(r.Items, item)
	}

	scene := rng.IntN(len(g.Rooms))
	g.Rooms[scene].IsCrimeScene = true

	murderer := npcNames[rng.IntN(len(npcNames))]

	// Sampling over the flattened room lists is uniform over items.
	placed := g.AllItems()
	reportItem := placed[rng.IntN(len(placed))]

	return &MurderCase{
		Murderer:   murderer,
		ReportItem: reportItem,
		CrimeScene: scene,
	}, nil
}
