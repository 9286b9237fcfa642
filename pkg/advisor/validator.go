package advisor

import (
	"fmt"
	"strings"
)

// ValidateGenerateRequest applies sanity checks on generation input.
func ValidateGenerateRequest(req GenerateRequest) error {
	if strings.TrimSpace(req.Industry) == "" {
		return fmt.Errorf("advisor: industry is required")
	}
	if strings.TrimSpace(req.TargetAudience) == "" {
		return fmt.Errorf("advisor: target_audience is required")
	}
	if strings.TrimSpace(req.BudgetRange) == "" {
		return fmt.Errorf("advisor: budget_range is required")
	}
	if strings.TrimSpace(req.ProblemFocus) == "" {
		return fmt.Errorf("advisor: problem_focus is required")
	}
	return nil
}

// ValidateValidateRequest applies sanity checks on validation input.
func ValidateValidateRequest(req ValidateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("advisor: name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("advisor: description is required")
	}
	if strings.TrimSpace(req.TargetMarket) == "" {
		return fmt.Errorf("advisor: target_market is required")
	}
	return nil
}

// ValidateIdeaSet checks the decoded generation payload against the expected
// shape. The model sometimes over- or under-delivers on count, so only an
// empty list is rejected.
func ValidateIdeaSet(set *IdeaSet) error {
	if set == nil {
		return fmt.Errorf("ideas payload is empty")
	}
	if len(set.Ideas) == 0 {
		return fmt.Errorf("ideas is required")
	}
	for i, idea := range set.Ideas {
		if strings.TrimSpace(idea.Name) == "" {
			return fmt.Errorf("idea[%d]: name is required", i)
		}
		if strings.TrimSpace(idea.Description) == "" {
			return fmt.Errorf("idea[%d]: description is required", i)
		}
		if strings.TrimSpace(idea.ValueProposition) == "" {
			return fmt.Errorf("idea[%d]: value_proposition is required", i)
		}
		if len(idea.KeyFeatures) == 0 {
			return fmt.Errorf("idea[%d]: key_features is required", i)
		}
		for j, feature := range idea.KeyFeatures {
			if strings.TrimSpace(feature) == "" {
				return fmt.Errorf("idea[%d]: key_features[%d] is empty", i, j)
			}
		}
	}
	return nil
}

// ValidateReport checks the decoded validation payload against the expected shape.
func ValidateReport(report *ValidationReport) error {
	if report == nil {
		return fmt.Errorf("validation payload is empty")
	}
	if report.MarketOpportunityScore < 1 || report.MarketOpportunityScore > 10 {
		return fmt.Errorf("market_opportunity_score must be 1-10, got %d", report.MarketOpportunityScore)
	}
	if report.SuccessProbability < 1 || report.SuccessProbability > 10 {
		return fmt.Errorf("success_probability must be 1-10, got %d", report.SuccessProbability)
	}
	if !report.CompetitionLevel.Valid() {
		return fmt.Errorf("competition_level must be Low/Medium/High, got %q", report.CompetitionLevel)
	}
	if strings.TrimSpace(report.MarketTrends) == "" {
		return fmt.Errorf("market_trends is required")
	}
	if strings.TrimSpace(report.GoToMarket) == "" {
		return fmt.Errorf("go_to_market is required")
	}
	if strings.TrimSpace(report.RiskAssessment) == "" {
		return fmt.Errorf("risk_assessment is required")
	}
	quadrants := []struct {
		name  string
		items []string
	}{
		{"swot.strengths", report.SWOT.Strengths},
		{"swot.weaknesses", report.SWOT.Weaknesses},
		{"swot.opportunities", report.SWOT.Opportunities},
		{"swot.threats", report.SWOT.Threats},
	}
	for _, q := range quadrants {
		if len(q.items) == 0 {
			return fmt.Errorf("%s is required", q.name)
		}
	}
	years := []struct {
		name  string
		value string
	}{
		{"financial_projections.year_1", report.FinancialProjections.Year1},
		{"financial_projections.year_2", report.FinancialProjections.Year2},
		{"financial_projections.year_3", report.FinancialProjections.Year3},
	}
	for _, y := range years {
		if strings.TrimSpace(y.value) == "" {
			return fmt.Errorf("%s is required", y.name)
		}
	}
	if len(report.KeyMetrics) == 0 {
		return fmt.Errorf("key_metrics is required")
	}
	if len(report.Recommendations) == 0 {
		return fmt.Errorf("recommendations is required")
	}
	return nil
}
