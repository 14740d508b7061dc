package narrative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered list",
			raw:  "1. Grand Foyer\n2. Moonlit Library\n3. Wine Cellar",
			want: []string{"Grand Foyer", "Moonlit Library", "Wine Cellar"},
		},
		{
			name: "bullets quotes and blanks",
			raw:  "\n- \"Silver Dagger\"\n\n* 'Brass Key'\n",
			want: []string{"Silver Dagger", "Brass Key"},
		},
		{
			name: "paren numbering and lower case",
			raw:  "10) old lantern\n11) torn letter",
			want: []string{"Old Lantern", "Torn Letter"},
		},
		{
			name: "keeps inner capitals",
			raw:  "1. Lady McAllister",
			want: []string{"Lady McAllister"},
		},
		{
			name: "already clean",
			raw:  "Conservatory",
			want: []string{"Conservatory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanNames(tt.raw))
		})
	}
}

func TestValidateNames(t *testing.T) {
	assert.NoError(t, ValidateNames([]string{"A", "B"}, 2))
	assert.Error(t, ValidateNames([]string{"A"}, 2))
	assert.Error(t, ValidateNames([]string{"A", "a"}, 2))
	assert.Error(t, ValidateNames([]string{"A", ""}, 2))
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	g := Static{}

	rooms, err := g.GenerateNames(ctx, CategoryRooms, 12, "any")
	require.NoError(t, err)
	require.NoError(t, ValidateNames(rooms, 12))
	assert.Equal(t, "Room 1", rooms[0])
	assert.Equal(t, "Room 12", rooms[11])

	npcs, _ := g.GenerateNames(ctx, CategoryNPCs, 5, "any")
	assert.Equal(t, "Suspect 5", npcs[4])

	items, _ := g.GenerateNames(ctx, CategoryItems, 8, "any")
	assert.Equal(t, "Item 8", items[7])

	intro, err := g.GenerateIntro(ctx, "Poirot", "art deco")
	require.NoError(t, err)
	assert.Contains(t, intro, "Poirot")
	assert.Contains(t, intro, "12 rooms")

	text, err := g.DescribeItem(ctx, "Rope", "Rope", "Suspect 1")
	require.NoError(t, err)
	assert.Equal(t, "You examine the Rope.", text)

	text, err = g.DescribeNPCInteraction(ctx, "Suspect 2", "Suspect 1", "Rope")
	require.NoError(t, err)
	assert.NotContains(t, text, "Suspect 1")
}
