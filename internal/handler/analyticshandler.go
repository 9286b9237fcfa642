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

func AnalyticsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AnalyticsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid validation id")))
			return
		}

		l := logic.NewAnalyticsLogic(r.Context(), svcCtx)
		resp, err := l.Analytics(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
