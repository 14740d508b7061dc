package narrative

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/murder-house/internal/services"
	"github.com/jwebster45206/murder-house/pkg/chat"
	"github.com/jwebster45206/murder-house/pkg/narrative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(mock *services.MockLLMAPI) *LLMGateway {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLLMGateway(mock, time.Second, log)
}

func TestLLMGateway_GenerateNames(t *testing.T) {
	mock := services.NewMockLLMAPI()
	mock.SetChatResponse("Here are your names:\n1. velvet parlor\n2. Ivy Conservatory\n3. Clock Tower")
	g := newTestGateway(mock)

	names, err := g.GenerateNames(context.Background(), narrative.CategoryRooms, 3, "gothic")
	require.NoError(t, err)
	assert.Equal(t, []string{"Velvet Parlor", "Ivy Conservatory", "Clock Tower"}, names)

	mock.SetChatResponse("1. Parlor\n2. Study\n3. Attic\n4. Cellar")
	names, err = g.GenerateNames(context.Background(), narrative.CategoryRooms, 3, "gothic")
	require.NoError(t, err)
	assert.Equal(t, []string{"Parlor", "Study", "Attic"}, names)

	calls := mock.GetCalls()
	require.NotEmpty(t, calls)
	assert.Contains(t, calls[len(calls)-1].Messages[0].Content, "gothic")
	assert.Contains(t, calls[len(calls)-1].Messages[0].Content, "3 unique room names")
}

func TestLLMGateway_GenerateNamesRejectsBadLists(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"too few", "1. Parlor\n2. Study"},
		{"duplicates", "1. Parlor\n2. parlor\n3. Study"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := services.NewMockLLMAPI()
			mock.SetChatResponse(tt.reply)
			g := newTestGateway(mock)

			_, err := g.GenerateNames(context.Background(), narrative.CategoryRooms, 3, "gothic")
			assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
		})
	}
}

func TestLLMGateway_ProviderFailure(t *testing.T) {
	mock := services.NewMockLLMAPI()
	mock.SetChatError(errors.New("connection refused"))
	g := newTestGateway(mock)
	ctx := context.Background()

	_, err := g.GenerateIntro(ctx, "Marple", "seaside")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)

	_, err = g.DescribeItem(ctx, "Rope", "Wrench", "Butler")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)

	_, err = g.DescribeNPCInteraction(ctx, "Cook", "Butler", "Wrench")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)

	mock.SetChatResponse("   ")
	_, err = g.GenerateIntro(ctx, "Marple", "seaside")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable, "blank reply")
}

func TestLLMGateway_Timeout(t *testing.T) {
	mock := services.NewMockLLMAPI()
	mock.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewLLMGateway(mock, 10*time.Millisecond, log)

	_, err := g.GenerateIntro(context.Background(), "Marple", "seaside")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
}

func TestLLMGateway_DescribeItemNonDisclosure(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		reply   string
		wantErr bool
	}{
		{"subtle hint", "Rope", "The rope is frayed at one end.", false},
		{"names the murderer", "Rope", "The rope smells of the butler's cologne.", true},
		{"names the weapon on another item", "Rope", "The rope lies near a bloody wrench.", true},
		{"weapon examined by name", "Wrench", "The wrench is heavy and cold.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := services.NewMockLLMAPI()
			mock.SetChatResponse(tt.reply)
			g := newTestGateway(mock)

			text, err := g.DescribeItem(context.Background(), tt.item, "Wrench", "Butler")
			if tt.wantErr {
				assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.reply, text)
		})
	}
}

func TestLLMGateway_DescribeNPCInteraction(t *testing.T) {
	mock := services.NewMockLLMAPI()
	mock.SetChatResponse("The Butler avoids your gaze and straightens his gloves.")
	g := newTestGateway(mock)

	// Talking to the murderer may name them.
	text, err := g.DescribeNPCInteraction(context.Background(), "Butler", "Butler", "Wrench")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "The Butler"))

	// Talking to someone else must not.
	_, err = g.DescribeNPCInteraction(context.Background(), "Cook", "Butler", "Wrench")
	assert.ErrorIs(t, err, narrative.ErrServiceUnavailable)
}
