package handler

import (
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/session"
	"ideaforge-api/internal/types"
)

// SessionHeader carries the caller's session identifier. A missing or blank
// header mints a new session; the effective id is echoed back on the response.
const SessionHeader = "X-Session-Id"

func resolveSessionID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		id = session.NewID()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func writeError(r *http.Request, w http.ResponseWriter, err error) {
	api, ok := errs.As(err)
	if !ok {
		api = errs.Internal(err)
	}
	if api.Status >= http.StatusInternalServerError {
		logx.WithContext(r.Context()).Errorf("request failed: %v", err)
	}
	httpx.WriteJsonCtx(r.Context(), w, api.Status, types.ErrorBody{
		Error: types.ErrorDetail{
			Code:    api.Code,
			Message: api.Message,
			Snippet: api.Snippet,
		},
	})
}
