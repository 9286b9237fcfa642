package types

import "ideaforge-api/pkg/advisor"

// GenerateIdeasReq is the body for POST /api/v1/ideas/generate.
type GenerateIdeasReq struct {
	Industry       string `json:"industry"`
	TargetAudience string `json:"target_audience"`
	BudgetRange    string `json:"budget_range"`
	ProblemFocus   string `json:"problem_focus"`
}

type GenerateIdeasResp struct {
	SessionID string         `json:"session_id"`
	Ideas     []advisor.Idea `json:"ideas"`
	Model     string         `json:"model"`
	BatchID   int64          `json:"batch_id,omitempty"`
}

// ValidateIdeaReq is the body for POST /api/v1/ideas/validate.
type ValidateIdeaReq struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TargetMarket string `json:"target_market"`
}

type ValidateIdeaResp struct {
	SessionID    string                    `json:"session_id"`
	Report       *advisor.ValidationReport `json:"report"`
	Model        string                    `json:"model"`
	ValidationID int64                     `json:"validation_id,omitempty"`
}

// AnalyticsReq addresses GET /api/v1/validations/:id/analytics.
type AnalyticsReq struct {
	ID int64 `path:"id"`
}

type AnalyticsResp struct {
	ValidationID int64              `json:"validation_id"`
	Analytics    *advisor.Analytics `json:"analytics"`
}

// SessionReq addresses GET and DELETE /api/v1/sessions/:id.
type SessionReq struct {
	ID string `path:"id"`
}

type SessionResp struct {
	SessionID         string                    `json:"session_id"`
	Ideas             []advisor.Idea            `json:"ideas"`
	PendingValidation *advisor.ValidateRequest  `json:"pending_validation,omitempty"`
	LastValidation    *advisor.ValidationReport `json:"last_validation,omitempty"`
	UpdatedAt         string                    `json:"updated_at"`
}

type SessionResetResp struct {
	SessionID string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}

// QueueValidationReq selects one of the session's generated ideas for
// validation via PUT /api/v1/sessions/:id/pending-validation. The target
// market is typed by the user later, so it may be omitted here.
type QueueValidationReq struct {
	ID           string `path:"id"`
	IdeaIndex    int    `json:"idea_index"`
	TargetMarket string `json:"target_market,optional"`
}

// HistoryReq filters list endpoints under /api/v1/history.
type HistoryReq struct {
	SessionID string `form:"session_id,optional"`
	Limit     int    `form:"limit,default=20"`
}

// IdeaBatchReq addresses GET /api/v1/history/ideas/:id.
type IdeaBatchReq struct {
	ID int64 `path:"id"`
}

type IdeaBatchItem struct {
	ID        int64                   `json:"id"`
	SessionID string                  `json:"session_id"`
	Request   advisor.GenerateRequest `json:"request"`
	Ideas     []advisor.Idea          `json:"ideas"`
	Model     string                  `json:"model"`
	CreatedAt string                  `json:"created_at"`
}

type IdeaHistoryResp struct {
	Batches []IdeaBatchItem `json:"batches"`
}

type ValidationItem struct {
	ID        int64                    `json:"id"`
	SessionID string                   `json:"session_id"`
	Request   advisor.ValidateRequest  `json:"request"`
	Report    advisor.ValidationReport `json:"report"`
	Model     string                   `json:"model"`
	CreatedAt string                   `json:"created_at"`
}

type ValidationHistoryResp struct {
	Validations []ValidationItem `json:"validations"`
}

type HealthResp struct {
	Status string `json:"status"`
	Env    string `json:"env"`
	Model  string `json:"model"`
}

// ErrorBody is the uniform error envelope for non-2xx responses.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Snippet carries the leading portion of an unparseable model completion.
	Snippet string `json:"snippet,omitempty"`
}
