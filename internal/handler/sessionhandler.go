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

func GetSessionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid session id")))
			return
		}

		l := logic.NewSessionLogic(r.Context(), svcCtx)
		resp, err := l.GetSession(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func QueueValidationHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.QueueValidationReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid request body")))
			return
		}

		l := logic.NewSessionLogic(r.Context(), svcCtx)
		resp, err := l.QueuePendingValidation(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ResetSessionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r, w, errs.Invalid(errors.New("invalid session id")))
			return
		}

		l := logic.NewSessionLogic(r.Context(), svcCtx)
		resp, err := l.ResetSession(&req)
		if err != nil {
			writeError(r, w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
