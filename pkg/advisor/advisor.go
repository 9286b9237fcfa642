package advisor

import (
	"context"
	"errors"
	"time"

	"ideaforge-api/pkg/extract"
	"ideaforge-api/pkg/llm"
)

// Advisor defines the idea generation and validation engine interface.
type Advisor interface {
	// GenerateIdeas builds the generation prompt, calls the LLM and returns decoded ideas.
	GenerateIdeas(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// ValidateIdea builds the validation prompt, calls the LLM and returns a validated report.
	ValidateIdea(ctx context.Context, req ValidateRequest) (*ValidateResult, error)
	// GetConfig exposes the immutable advisor configuration.
	GetConfig() *Config
}

// BasicAdvisor wires configuration, prompt rendering and the LLM client.
type BasicAdvisor struct {
	cfg           *Config
	llm           llm.LLMClient
	renderer      *PromptRenderer
	conversations ConversationRecorder
}

// NewAdvisor constructs a BasicAdvisor from config and an LLM client.
func NewAdvisor(cfg *Config, client llm.LLMClient, opts ...AdvisorOption) (*BasicAdvisor, error) {
	if cfg == nil {
		return nil, errors.New("advisor: config is required")
	}
	if client == nil {
		return nil, errors.New("advisor: llm client is required")
	}
	renderer, err := NewPromptRenderer(cfg)
	if err != nil {
		return nil, err
	}
	adv := &BasicAdvisor{
		cfg:           cfg,
		llm:           client,
		renderer:      renderer,
		conversations: noopConversationRecorder{},
	}
	for _, opt := range opts {
		opt(adv)
	}
	return adv, nil
}

// GetConfig returns the underlying configuration.
func (a *BasicAdvisor) GetConfig() *Config { return a.cfg }

// GenerateIdeas implements the end-to-end generation flow.
func (a *BasicAdvisor) GenerateIdeas(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if a == nil || a.renderer == nil {
		return nil, errors.New("advisor: not initialised")
	}
	if err := ValidateGenerateRequest(req); err != nil {
		return nil, err
	}

	promptStr, err := a.renderer.RenderGenerate(req)
	if err != nil {
		return nil, err
	}

	raw, usage, model, err := a.complete(ctx, promptStr, a.cfg.GenerateMaxTokens)
	if err != nil {
		return nil, err
	}
	a.record(ctx, "generate_ideas", promptStr, raw, usage, model)

	var out IdeaSet
	if err := extract.Decode(raw, &out); err != nil {
		return nil, err
	}
	if err := ValidateIdeaSet(&out); err != nil {
		return nil, extract.SchemaMismatch(raw, err)
	}

	return &GenerateResult{
		Ideas:     out.Ideas,
		Prompt:    promptStr,
		Model:     model,
		Timestamp: time.Now(),
	}, nil
}

// ValidateIdea implements the end-to-end validation flow.
func (a *BasicAdvisor) ValidateIdea(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	if a == nil || a.renderer == nil {
		return nil, errors.New("advisor: not initialised")
	}
	if err := ValidateValidateRequest(req); err != nil {
		return nil, err
	}

	promptStr, err := a.renderer.RenderValidate(req)
	if err != nil {
		return nil, err
	}

	raw, usage, model, err := a.complete(ctx, promptStr, a.cfg.ValidateMaxTokens)
	if err != nil {
		return nil, err
	}
	a.record(ctx, "validate_idea", promptStr, raw, usage, model)

	var out ValidationReport
	if err := extract.Decode(raw, &out); err != nil {
		return nil, err
	}
	if err := ValidateReport(&out); err != nil {
		return nil, extract.SchemaMismatch(raw, err)
	}

	return &ValidateResult{
		Report:    &out,
		Prompt:    promptStr,
		Model:     model,
		Timestamp: time.Now(),
	}, nil
}

func (a *BasicAdvisor) complete(ctx context.Context, prompt string, maxTokens int) (string, llm.Usage, string, error) {
	temp := a.cfg.Temperature
	req := &llm.ChatRequest{
		// Leave Model empty to use the client's default model.
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()
	resp, err := a.llm.Chat(callCtx, req)
	if err != nil {
		return "", llm.Usage{}, "", err
	}
	return resp.Text(), resp.Usage, resp.Model, nil
}

func (a *BasicAdvisor) record(ctx context.Context, topic, prompt, response string, usage llm.Usage, model string) {
	rec := ConversationRecord{
		ModelID:          model,
		Prompt:           prompt,
		PromptTokens:     usage.PromptTokens,
		Response:         response,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		Timestamp:        time.Now(),
		Topic:            topic,
	}
	// Recorder failures must not break the request path.
	_ = a.conversations.RecordConversation(ctx, rec)
}
