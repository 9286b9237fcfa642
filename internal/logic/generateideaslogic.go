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

type GenerateIdeasLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGenerateIdeasLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GenerateIdeasLogic {
	return &GenerateIdeasLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GenerateIdeasLogic) GenerateIdeas(req *types.GenerateIdeasReq, sessionID string) (*types.GenerateIdeasResp, error) {
	genReq := advisor.GenerateRequest{
		Industry:       req.Industry,
		TargetAudience: req.TargetAudience,
		BudgetRange:    req.BudgetRange,
		ProblemFocus:   req.ProblemFocus,
	}
	if err := advisor.ValidateGenerateRequest(genReq); err != nil {
		return nil, errs.Invalid(err)
	}

	out, err := l.svcCtx.Advisor.GenerateIdeas(l.ctx, genReq)
	if err != nil {
		return nil, errs.FromAdvisor(err)
	}

	// Replace the session's idea batch; a fresh generation supersedes the old one.
	state, err := l.svcCtx.Sessions.Get(l.ctx, sessionID)
	if err != nil {
		state = &session.State{}
	}
	state.Ideas = out.Ideas
	if err := l.svcCtx.Sessions.Put(l.ctx, sessionID, state); err != nil {
		l.Errorf("store session %s: %v", sessionID, err)
	}

	resp := &types.GenerateIdeasResp{
		SessionID: sessionID,
		Ideas:     out.Ideas,
		Model:     out.Model,
	}

	if l.svcCtx.History != nil {
		id, err := l.svcCtx.History.SaveIdeaBatch(l.ctx, &repo.IdeaBatchRecord{
			SessionID: sessionID,
			Request:   genReq,
			Ideas:     out.Ideas,
			Model:     out.Model,
		})
		if err != nil {
			// History is best-effort; the generation already succeeded.
			l.Errorf("save idea batch: %v", err)
		} else {
			resp.BatchID = id
		}
	}

	return resp, nil
}
