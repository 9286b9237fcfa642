package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/repo"
	"ideaforge-api/internal/session"
	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
	"ideaforge-api/pkg/advisor"
)

type ValidateIdeaLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewValidateIdeaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ValidateIdeaLogic {
	return &ValidateIdeaLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ValidateIdeaLogic) ValidateIdea(req *types.ValidateIdeaReq, sessionID string) (*types.ValidateIdeaResp, error) {
	valReq := advisor.ValidateRequest{
		Name:         req.Name,
		Description:  req.Description,
		TargetMarket: req.TargetMarket,
	}
	if err := advisor.ValidateValidateRequest(valReq); err != nil {
		return nil, errs.Invalid(err)
	}

	out, err := l.svcCtx.Advisor.ValidateIdea(l.ctx, valReq)
	if err != nil {
		return nil, errs.FromAdvisor(err)
	}

	state, err := l.svcCtx.Sessions.Get(l.ctx, sessionID)
	if err != nil {
		state = &session.State{}
	}
	state.LastValidation = out.Report
	state.PendingValidation = nil
	if err := l.svcCtx.Sessions.Put(l.ctx, sessionID, state); err != nil {
		l.Errorf("store session %s: %v", sessionID, err)
	}

	resp := &types.ValidateIdeaResp{
		SessionID: sessionID,
		Report:    out.Report,
		Model:     out.Model,
	}

	if l.svcCtx.History != nil {
		id, err := l.svcCtx.History.SaveValidation(l.ctx, &repo.ValidationRecord{
			SessionID: sessionID,
			Request:   valReq,
			Report:    *out.Report,
			Model:     out.Model,
		})
		if err != nil {
			l.Errorf("save validation: %v", err)
		} else {
			resp.ValidationID = id
		}
	}

	return resp, nil
}
