package advisor

// ScoreBar is one bar in the validation score chart.
type ScoreBar struct {
	Metric string `json:"metric"`
	Score  int    `json:"score"`
	Max    int    `json:"max"`
}

// SWOTSegment is one slice of the SWOT distribution chart.
type SWOTSegment struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CompetitionGauge describes the gauge widget derived from the competition level.
type CompetitionGauge struct {
	Level     CompetitionLevel `json:"level"`
	Value     int              `json:"value"`
	Max       int              `json:"max"`
	Threshold int              `json:"threshold"`
}

// Analytics is the chart-ready view of a validation report.
type Analytics struct {
	Scores           []ScoreBar       `json:"scores"`
	SWOTDistribution []SWOTSegment    `json:"swot_distribution"`
	Competition      CompetitionGauge `json:"competition"`
}

const (
	scoreMax       = 10
	gaugeMax       = 10
	gaugeThreshold = 8
)

var competitionGaugeValues = map[CompetitionLevel]int{
	CompetitionLow:    3,
	CompetitionMedium: 6,
	CompetitionHigh:   9,
}

// BuildAnalytics derives chart data from a validated report.
func BuildAnalytics(report *ValidationReport) *Analytics {
	if report == nil {
		return nil
	}
	return &Analytics{
		Scores: []ScoreBar{
			{Metric: "Market Opportunity", Score: report.MarketOpportunityScore, Max: scoreMax},
			{Metric: "Success Probability", Score: report.SuccessProbability, Max: scoreMax},
		},
		SWOTDistribution: []SWOTSegment{
			{Category: "Strengths", Count: len(report.SWOT.Strengths)},
			{Category: "Weaknesses", Count: len(report.SWOT.Weaknesses)},
			{Category: "Opportunities", Count: len(report.SWOT.Opportunities)},
			{Category: "Threats", Count: len(report.SWOT.Threats)},
		},
		Competition: CompetitionGauge{
			Level: report.CompetitionLevel,
			// Unknown levels map to zero rather than failing the request.
			Value:     competitionGaugeValues[report.CompetitionLevel],
			Max:       gaugeMax,
			Threshold: gaugeThreshold,
		},
	}
}
