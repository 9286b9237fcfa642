package advisor

import "time"

// GenerateRequest carries the business parameters for idea generation.
type GenerateRequest struct {
	Industry       string `json:"industry"`
	TargetAudience string `json:"target_audience"`
	BudgetRange    string `json:"budget_range"`
	ProblemFocus   string `json:"problem_focus"`
}

// Idea is a single generated startup concept.
type Idea struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	ValueProposition     string   `json:"value_proposition"`
	MarketSize           string   `json:"market_size"`
	RevenueModel         string   `json:"revenue_model"`
	KeyFeatures          []string `json:"key_features"`
	CompetitiveAdvantage string   `json:"competitive_advantage"`
}

// IdeaSet is the structured contract expected from the generation prompt.
type IdeaSet struct {
	Ideas []Idea `json:"ideas"`
}

// ValidateRequest describes the idea submitted for market validation.
type ValidateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetMarket string `json:"target_market"`
}

// CompetitionLevel is the qualitative competition assessment.
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "Low"
	CompetitionMedium CompetitionLevel = "Medium"
	CompetitionHigh   CompetitionLevel = "High"
)

// Valid reports whether the level is one of the known values.
func (l CompetitionLevel) Valid() bool {
	switch l {
	case CompetitionLow, CompetitionMedium, CompetitionHigh:
		return true
	}
	return false
}

// SWOT holds the four analysis quadrants as string lists.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// FinancialProjections carries free-text projections for the first three years.
type FinancialProjections struct {
	Year1 string `json:"year_1"`
	Year2 string `json:"year_2"`
	Year3 string `json:"year_3"`
}

// ValidationReport is the structured contract expected from the validation prompt.
type ValidationReport struct {
	MarketOpportunityScore int                  `json:"market_opportunity_score"`
	CompetitionLevel       CompetitionLevel     `json:"competition_level"`
	MarketTrends           string               `json:"market_trends"`
	SWOT                   SWOT                 `json:"swot"`
	GoToMarket             string               `json:"go_to_market"`
	FinancialProjections   FinancialProjections `json:"financial_projections"`
	RiskAssessment         string               `json:"risk_assessment"`
	SuccessProbability     int                  `json:"success_probability"`
	KeyMetrics             []string             `json:"key_metrics"`
	Recommendations        []string             `json:"recommendations"`
}

// GenerateResult bundles the decoded ideas with call metadata.
type GenerateResult struct {
	Ideas     []Idea
	Prompt    string
	Model     string
	Timestamp time.Time
}

// ValidateResult bundles the decoded report with call metadata.
type ValidateResult struct {
	Report    *ValidationReport
	Prompt    string
	Model     string
	Timestamp time.Time
}
