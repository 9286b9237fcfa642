package advisor

import (
	"context"
	"time"
)

// ConversationRecorder captures prompt/response pairs for debugging/cost tracking.
type ConversationRecorder interface {
	RecordConversation(ctx context.Context, rec ConversationRecord) error
}

// ConversationRecord describes a single advisor → LLM interaction.
type ConversationRecord struct {
	ModelID          string
	Prompt           string
	PromptTokens     int
	Response         string
	CompletionTokens int
	TotalTokens      int
	Timestamp        time.Time
	Topic            string
}

type noopConversationRecorder struct{}

func (noopConversationRecorder) RecordConversation(ctx context.Context, rec ConversationRecord) error {
	return nil
}

// AdvisorOption customises BasicAdvisor construction.
type AdvisorOption func(*BasicAdvisor)

// WithConversationRecorder injects a recorder used to persist prompt/response pairs.
func WithConversationRecorder(recorder ConversationRecorder) AdvisorOption {
	return func(adv *BasicAdvisor) {
		if recorder == nil {
			adv.conversations = noopConversationRecorder{}
			return
		}
		adv.conversations = recorder
	}
}
