package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/logic"
	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
)

func ValidateIdeaHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ValidateIdeaReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid request body")))
			return
		}

		sessionID := resolveSessionID(w, r)
		l := logic.NewValidateIdeaLogic(r.Context(), svcCtx)
		resp, err := l.ValidateIdea(&req, sessionID)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
