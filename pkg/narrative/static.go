package narrative

import (
	"context"
	"fmt"
)

// Static is a Gateway that never calls out. It is the fallback for every
// other gateway and the default when no LLM provider is configured.
type Static struct{}

var _ Gateway = Static{}

func (Static) GenerateNames(_ context.Context, category Category, count int, _ string) ([]string, error) {
	return FallbackNames(category, count), nil
}

func (Static) GenerateIntro(_ context.Context, playerName, theme string) (string, error) {
	return FallbackIntro(playerName, theme), nil
}

func (Static) DescribeItem(_ context.Context, itemName, _, _ string) (string, error) {
	return FallbackItem(itemName), nil
}

func (Static) DescribeNPCInteraction(_ context.Context, npcName, _, _ string) (string, error) {
	return FallbackInteraction(npcName), nil
}

// FallbackNames numbers generic names: "Room 1", "Suspect 2", "Item 3".
func FallbackNames(category Category, count int) []string {
	prefix := "Item"
	switch category {
	case CategoryRooms:
		prefix = "Room"
	case CategoryNPCs:
		prefix = "Suspect"
	}
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return names
}

func FallbackIntro(playerName, theme string) string {
	if playerName == "" {
		playerName = "Investigator"
	}
	if theme == "" {
		return fmt.Sprintf("You are %s, called to a house where John Doe has been murdered. "+
			"The house is shaped like an icosahedron: 12 rooms joined by 30 paths.", playerName)
	}
	return fmt.Sprintf("You are %s, called to a %s house where John Doe has been murdered. "+
		"The house is shaped like an icosahedron: 12 rooms joined by 30 paths.", playerName, theme)
}

func FallbackItem(itemName string) string {
	return "You examine the " + itemName + "."
}

func FallbackInteraction(npcName string) string {
	return "You speak with " + npcName + ", but they have nothing to add."
}
