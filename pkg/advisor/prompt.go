package advisor

import (
	"fmt"

	"ideaforge-api/pkg/llm"
)

// GeneratePromptInputs contains dynamic data injected into the idea generation template.
type GeneratePromptInputs struct {
	IdeaCount      int
	Industry       string
	TargetAudience string
	BudgetRange    string
	ProblemFocus   string
}

// ValidatePromptInputs contains dynamic data injected into the validation template.
type ValidatePromptInputs struct {
	Name         string
	Description  string
	TargetMarket string
}

// PromptRenderer renders advisor prompts from template files.
type PromptRenderer struct {
	cfg      *Config
	ideas    *llm.PromptTemplate
	validate *llm.PromptTemplate
}

// NewPromptRenderer constructs a renderer from the configured template paths.
func NewPromptRenderer(cfg *Config) (*PromptRenderer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("advisor prompt renderer requires config")
	}
	ideas, err := llm.NewPromptTemplate(cfg.IdeasTemplate, nil)
	if err != nil {
		return nil, err
	}
	validate, err := llm.NewPromptTemplate(cfg.ValidateTemplate, nil)
	if err != nil {
		return nil, err
	}
	return &PromptRenderer{
		cfg:      cfg,
		ideas:    ideas,
		validate: validate,
	}, nil
}

// RenderGenerate produces the final generation prompt for the given request.
func (r *PromptRenderer) RenderGenerate(req GenerateRequest) (string, error) {
	if r == nil || r.ideas == nil {
		return "", fmt.Errorf("advisor prompt renderer not initialised")
	}
	return r.ideas.Render(GeneratePromptInputs{
		IdeaCount:      r.cfg.IdeaCount,
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		BudgetRange:    req.BudgetRange,
		ProblemFocus:   req.ProblemFocus,
	})
}

// RenderValidate produces the final validation prompt for the given request.
func (r *PromptRenderer) RenderValidate(req ValidateRequest) (string, error) {
	if r == nil || r.validate == nil {
		return "", fmt.Errorf("advisor prompt renderer not initialised")
	}
	return r.validate.Render(ValidatePromptInputs{
		Name:         req.Name,
		Description:  req.Description,
		TargetMarket: req.TargetMarket,
	})
}

// GenerateDigest returns the generation template digest for observability.
func (r *PromptRenderer) GenerateDigest() string {
	if r == nil || r.ideas == nil {
		return ""
	}
	return r.ideas.Digest()
}

// ValidateDigest returns the validation template digest for observability.
func (r *PromptRenderer) ValidateDigest() string {
	if r == nil || r.validate == nil {
		return ""
	}
	return r.validate.Digest()
}
