// Package narrative defines the contract for themed text generation.
//
// The game core hands a Gateway its inputs and shows whatever comes back; it
// never parses or branches on the returned text.
package narrative

import (
	"context"
	"errors"
)

// ErrServiceUnavailable is returned when narration could not be produced.
// Callers substitute fallback text and carry on.
var ErrServiceUnavailable = errors.New("narrative service unavailable")

// Category selects what kind of names GenerateNames produces.
type Category string

const (
	CategoryRooms Category = "room names"
	CategoryNPCs  Category = "NPC names"
	CategoryItems Category = "item names"
)

// Gateway produces themed names and prose. DescribeItem and
// DescribeNPCInteraction receive the solution so they can hint at it, and
// must never name the murderer or the report item outright.
type Gateway interface {
	// GenerateNames returns exactly count unique names.
	GenerateNames(ctx context.Context, category Category, count int, theme string) ([]string, error)

	GenerateIntro(ctx context.Context, playerName, theme string) (string, error)

	DescribeItem(ctx context.Context, itemName, reportItem, murderer string) (string, error)

	DescribeNPCInteraction(ctx context.Context, npcName, murderer, reportItem string) (string, error)
}
