package advisor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge-api/pkg/extract"
	"ideaforge-api/pkg/llm"
)

const ideasBody = "```json\n" + `{
  "ideas": [
    {
      "name": "FarmLink",
      "description": "Marketplace connecting small farms with local restaurants.",
      "value_proposition": "Fresh produce with same-day delivery.",
      "market_size": "$2B local food market",
      "revenue_model": "Transaction fees",
      "key_features": ["Order matching", "Route planning", "Quality ratings"],
      "competitive_advantage": "Direct farm relationships"
    },
    {
      "name": "CropCast",
      "description": "Yield forecasting for independent growers.",
      "value_proposition": "Plan harvests around demand.",
      "market_size": "$500M agtech analytics",
      "revenue_model": "SaaS subscription",
      "key_features": ["Weather blending", "Demand signals"],
      "competitive_advantage": "Regional models"
    },
    {
      "name": "ColdChainly",
      "description": "Shared refrigerated logistics for small producers.",
      "value_proposition": "Cold chain access without fleet ownership.",
      "market_size": "$1B cold logistics",
      "revenue_model": "Per-pallet pricing",
      "key_features": ["Slot booking", "Temperature audit trail"],
      "competitive_advantage": "Pooled capacity"
    }
  ]
}` + "\n```"

const reportBody = `Here is the analysis you asked for:
{
  "market_opportunity_score": 8,
  "competition_level": "Medium",
  "market_trends": "Local sourcing demand keeps growing.",
  "swot": {
    "strengths": ["Direct supply"],
    "weaknesses": ["Thin margins"],
    "opportunities": ["B2B expansion"],
    "threats": ["Incumbent distributors"]
  },
  "go_to_market": "Start with one metro area.",
  "financial_projections": {
    "year_1": "$100K",
    "year_2": "$500K",
    "year_3": "$2M"
  },
  "risk_assessment": "Supply consistency is the main risk.",
  "success_probability": 7,
  "key_metrics": ["GMV", "Retention"],
  "recommendations": ["Sign anchor restaurants first"]
}`

// fakeLLM returns a canned completion body and records the last request.
type fakeLLM struct {
	body    string
	err     error
	lastReq *llm.ChatRequest
}

func (f *fakeLLM) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{
		ID:    "chatcmpl-test",
		Model: "mistralai/mistral-small-3.2-24b-instruct:free",
		Choices: []llm.Choice{
			{Message: llm.Message{Role: "assistant", Content: f.body}, FinishReason: "stop"},
		},
		Usage: llm.Usage{PromptTokens: 120, CompletionTokens: 340, TotalTokens: 460},
	}, nil
}

func (f *fakeLLM) GetConfig() *llm.Config { return &llm.Config{} }
func (f *fakeLLM) Close() error           { return nil }

type captureRecorder struct {
	records []ConversationRecord
}

func (c *captureRecorder) RecordConversation(_ context.Context, rec ConversationRecord) error {
	c.records = append(c.records, rec)
	return nil
}

func testCfg(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		IdeasTemplate:    filepath.Join("..", "..", "etc", "prompts", "advisor", "ideas.tmpl"),
		ValidateTemplate: filepath.Join("..", "..", "etc", "prompts", "advisor", "validate.tmpl"),
	}
	cfg.applyDefaults()
	require.NoError(t, cfg.parseDurations())
	require.NoError(t, cfg.Validate())
	return cfg
}

func genReq() GenerateRequest {
	return GenerateRequest{
		Industry:       "Food & Beverage",
		TargetAudience: "Small farms",
		BudgetRange:    "$10K - $50K",
		ProblemFocus:   "Farm to table logistics",
	}
}

func valReq() ValidateRequest {
	return ValidateRequest{
		Name:         "FarmLink",
		Description:  "Marketplace for local produce.",
		TargetMarket: "Urban restaurants",
	}
}

func TestNewAdvisorValidation(t *testing.T) {
	_, err := NewAdvisor(nil, &fakeLLM{})
	assert.Error(t, err)

	_, err = NewAdvisor(testCfg(t), nil)
	assert.Error(t, err)
}

func TestAdvisorGenerateIdeas(t *testing.T) {
	client := &fakeLLM{body: ideasBody}
	adv, err := NewAdvisor(testCfg(t), client)
	require.NoError(t, err)

	out, err := adv.GenerateIdeas(context.Background(), genReq())
	require.NoError(t, err)
	require.Len(t, out.Ideas, 3)
	assert.Equal(t, "FarmLink", out.Ideas[0].Name)
	assert.Equal(t, []string{"Slot booking", "Temperature audit trail"}, out.Ideas[2].KeyFeatures)
	assert.NotZero(t, out.Timestamp)

	// Prompt carries the user criteria and the JSON contract.
	assert.Contains(t, out.Prompt, "Industry: Food & Beverage")
	assert.Contains(t, out.Prompt, "Generate 3 innovative startup ideas")
	assert.Contains(t, out.Prompt, `"value_proposition"`)

	require.NotNil(t, client.lastReq)
	require.Len(t, client.lastReq.Messages, 1)
	assert.Equal(t, "user", client.lastReq.Messages[0].Role)
	require.NotNil(t, client.lastReq.MaxTokens)
	assert.Equal(t, 2000, *client.lastReq.MaxTokens)
	require.NotNil(t, client.lastReq.Temperature)
	assert.InDelta(t, 0.7, *client.lastReq.Temperature, 1e-9)
}

func TestAdvisorGenerateIdeasRejectsEmptyFields(t *testing.T) {
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{body: ideasBody})
	require.NoError(t, err)

	req := genReq()
	req.ProblemFocus = ""
	_, err = adv.GenerateIdeas(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem_focus")
}

func TestAdvisorGenerateIdeasMalformedPayload(t *testing.T) {
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{body: "the model rambled and returned no json"})
	require.NoError(t, err)

	_, err = adv.GenerateIdeas(context.Background(), genReq())
	require.Error(t, err)
	perr, ok := extract.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, extract.ReasonMalformedJSON, perr.Reason)
	assert.Contains(t, perr.Snippet, "the model rambled")
}

func TestAdvisorGenerateIdeasSchemaMismatch(t *testing.T) {
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{body: `{"ideas": []}`})
	require.NoError(t, err)

	_, err = adv.GenerateIdeas(context.Background(), genReq())
	require.Error(t, err)
	perr, ok := extract.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, extract.ReasonSchemaMismatch, perr.Reason)
}

func TestAdvisorGenerateIdeasUpstreamError(t *testing.T) {
	upstream := errors.New("upstream boom")
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{err: upstream})
	require.NoError(t, err)

	_, err = adv.GenerateIdeas(context.Background(), genReq())
	require.ErrorIs(t, err, upstream)
	_, ok := extract.AsParseError(err)
	assert.False(t, ok)
}

func TestAdvisorValidateIdea(t *testing.T) {
	client := &fakeLLM{body: reportBody}
	adv, err := NewAdvisor(testCfg(t), client)
	require.NoError(t, err)

	out, err := adv.ValidateIdea(context.Background(), valReq())
	require.NoError(t, err)
	require.NotNil(t, out.Report)
	assert.Equal(t, 8, out.Report.MarketOpportunityScore)
	assert.Equal(t, CompetitionMedium, out.Report.CompetitionLevel)
	assert.Equal(t, "$2M", out.Report.FinancialProjections.Year3)

	assert.Contains(t, out.Prompt, "Startup Name: FarmLink")
	require.NotNil(t, client.lastReq.MaxTokens)
	assert.Equal(t, 3000, *client.lastReq.MaxTokens)
}

func TestAdvisorValidateIdeaSchemaMismatch(t *testing.T) {
	body := strings.Replace(reportBody, `"competition_level": "Medium"`, `"competition_level": "Extreme"`, 1)
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{body: body})
	require.NoError(t, err)

	_, err = adv.ValidateIdea(context.Background(), valReq())
	require.Error(t, err)
	perr, ok := extract.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, extract.ReasonSchemaMismatch, perr.Reason)
	assert.Contains(t, err.Error(), "competition_level")
}

func TestAdvisorRecordsConversations(t *testing.T) {
	recorder := &captureRecorder{}
	adv, err := NewAdvisor(testCfg(t), &fakeLLM{body: reportBody}, WithConversationRecorder(recorder))
	require.NoError(t, err)

	_, err = adv.ValidateIdea(context.Background(), valReq())
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, "validate_idea", rec.Topic)
	assert.Equal(t, 460, rec.TotalTokens)
	assert.Contains(t, rec.Prompt, "Startup Name: FarmLink")
	assert.Contains(t, rec.Response, "market_opportunity_score")
	assert.WithinDuration(t, time.Now(), rec.Timestamp, time.Minute)
}
