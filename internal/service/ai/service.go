// Package ai adapts the remote completion backend: it assembles the
// persona instruction, prior turns, and the new user turn into one
// request and performs a single round-trip per call. No retries, no
// streaming; responses are awaited whole.
package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/neuralchat/backend/internal/config"
	"github.com/neuralchat/backend/internal/model/chat"
)

// EmptyReplyPlaceholder stands in for a backend reply with no content.
const EmptyReplyPlaceholder = "No response received"

// Service holds one compiled completion chain per model tier.
type Service struct {
	chains map[chat.ModelTier]compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds and compiles the per-tier chains.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	models := map[chat.ModelTier]string{
		chat.ModelFast:     cfg.FastModel,
		chat.ModelAdvanced: cfg.AdvancedModel,
	}

	chains := make(map[chat.ModelTier]compose.Runnable[map[string]any, *schema.Message], len(models))
	for tier, name := range models {
		chatModel, err := cfg.NewChatModel(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s chat model: %w", tier, err)
		}

		promptTemplate := prompt.FromMessages(
			schema.FString,
			schema.SystemMessage("{system}"),
			schema.MessagesPlaceholder("history", true),
			schema.UserMessage("{query}"),
		)

		chain := compose.NewChain[map[string]any, *schema.Message]()
		chain.AppendChatTemplate(promptTemplate)
		chain.AppendChatModel(chatModel)

		runnable, err := chain.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s chat chain: %w", tier, err)
		}
		chains[tier] = runnable
	}

	return &Service{chains: chains}, nil
}

// Complete sends exactly one completion request carrying the persona
// instruction, the prior turns in original order, and the new user
// message last. An empty backend reply yields the fixed placeholder
// rather than an error; transport and backend faults are returned for
// the caller to translate.
func (s *Service) Complete(ctx context.Context, systemInstruction string, history []chat.Message, userMessage string, tier chat.ModelTier) (string, error) {
	chain, ok := s.chains[tier]
	if !ok {
		chain = s.chains[chat.ModelFast]
	}

	input := map[string]any{
		"system":  systemInstruction,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}

	if response == nil || response.Content == "" {
		log.Printf("[ai] backend returned empty reply, using placeholder")
		return EmptyReplyPlaceholder, nil
	}
	return response.Content, nil
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
