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

func IdeaHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.HistoryReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid history query")))
			return
		}

		l := logic.NewHistoryLogic(r.Context(), svcCtx)
		resp, err := l.IdeaHistory(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func IdeaBatchHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IdeaBatchReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid batch id")))
			return
		}

		l := logic.NewHistoryLogic(r.Context(), svcCtx)
		resp, err := l.GetIdeaBatch(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ValidationHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.HistoryReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid history query")))
			return
		}

		l := logic.NewHistoryLogic(r.Context(), svcCtx)
		resp, err := l.ValidationHistory(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
