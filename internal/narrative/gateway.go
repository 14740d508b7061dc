// Package narrative implements the narrative.Gateway on top of an LLM
// provider.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/murder-house/internal/services"
	"github.com/jwebster45206/murder-house/pkg/chat"
	"github.com/jwebster45206/murder-house/pkg/narrative"
)

const DefaultTimeout = 20 * time.Second

// LLMGateway asks an LLM for names and prose. Every failure is reported as
// narrative.ErrServiceUnavailable so callers can fall back.
type LLMGateway struct {
	llm     services.LLMService
	timeout time.Duration
	logger  *slog.Logger
}

var _ narrative.Gateway = (*LLMGateway)(nil)

func NewLLMGateway(llm services.LLMService, timeout time.Duration, logger *slog.Logger) *LLMGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LLMGateway{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

func (g *LLMGateway) GenerateNames(ctx context.Context, category narrative.Category, count int, theme string) ([]string, error) {
	reply, err := g.complete(ctx, namesPrompt(category, count, theme))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, n := range narrative.CleanNames(reply) {
		// "Here are your names:" style headings
		if strings.HasSuffix(n, ":") {
			continue
		}
		names = append(names, n)
	}
	if len(names) > count {
		names = names[:count]
	}
	if err := narrative.ValidateNames(names, count); err != nil {
		g.logger.Warn("Generated name list rejected", "category", category, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", narrative.ErrServiceUnavailable, category, err)
	}
	return names, nil
}

func (g *LLMGateway) GenerateIntro(ctx context.Context, playerName, theme string) (string, error) {
	return g.complete(ctx, introPrompt(playerName, theme))
}

func (g *LLMGateway) DescribeItem(ctx context.Context, itemName, reportItem, murderer string) (string, error) {
	text, err := g.complete(ctx, itemPrompt(itemName, reportItem, murderer))
	if err != nil {
		return "", err
	}
	secrets := []string{murderer}
	if itemName != reportItem {
		secrets = append(secrets, reportItem)
	}
	if leaks(text, secrets...) {
		g.logger.Warn("Item description revealed the solution, discarding", "item", itemName)
		return "", fmt.Errorf("%w: description revealed the solution", narrative.ErrServiceUnavailable)
	}
	return text, nil
}

func (g *LLMGateway) DescribeNPCInteraction(ctx context.Context, npcName, murderer, reportItem string) (string, error) {
	text, err := g.complete(ctx, interactionPrompt(npcName, murderer, reportItem))
	if err != nil {
		return "", err
	}
	secrets := []string{reportItem}
	if npcName != murderer {
		secrets = append(secrets, murderer)
	}
	if leaks(text, secrets...) {
		g.logger.Warn("NPC interaction revealed the solution, discarding", "npc", npcName)
		return "", fmt.Errorf("%w: interaction revealed the solution", narrative.ErrServiceUnavailable)
	}
	return text, nil
}

func (g *LLMGateway) complete(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.llm.Chat(ctx, messages)
	if err != nil {
		g.logger.Warn("LLM request failed", "error", err)
		return "", fmt.Errorf("%w: %v", narrative.ErrServiceUnavailable, err)
	}
	text := strings.TrimSpace(resp.Message)
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", narrative.ErrServiceUnavailable)
	}
	return text, nil
}

func leaks(text string, secrets ...string) bool {
	lower := strings.ToLower(text)
	for _, s := range secrets {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
