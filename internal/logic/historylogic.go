package logic

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/repo"
	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
)

const maxHistoryLimit = 100

type HistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

func (l *HistoryLogic) GetIdeaBatch(req *types.IdeaBatchReq) (*types.IdeaBatchItem, error) {
	if req.ID <= 0 {
		return nil, errs.Invalid(errors.New("batch id must be positive"))
	}
	if l.svcCtx.History == nil {
		return nil, errs.NotFound("idea history is not enabled")
	}

	batch, err := l.svcCtx.History.GetIdeaBatch(l.ctx, req.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.NotFound("idea batch not found")
		}
		return nil, errs.Internal(err)
	}

	return &types.IdeaBatchItem{
		ID:        batch.ID,
		SessionID: batch.SessionID,
		Request:   batch.Request,
		Ideas:     batch.Ideas,
		Model:     batch.Model,
		CreatedAt: batch.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (l *HistoryLogic) IdeaHistory(req *types.HistoryReq) (*types.IdeaHistoryResp, error) {
	resp := &types.IdeaHistoryResp{Batches: []types.IdeaBatchItem{}}
	if l.svcCtx.History == nil {
		return resp, nil
	}

	batches, err := l.svcCtx.History.ListIdeaBatches(l.ctx, req.SessionID, clampLimit(req.Limit))
	if err != nil {
		return nil, errs.Internal(err)
	}
	for _, batch := range batches {
		resp.Batches = append(resp.Batches, types.IdeaBatchItem{
			ID:        batch.ID,
			SessionID: batch.SessionID,
			Request:   batch.Request,
			Ideas:     batch.Ideas,
			Model:     batch.Model,
			CreatedAt: batch.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (l *HistoryLogic) ValidationHistory(req *types.HistoryReq) (*types.ValidationHistoryResp, error) {
	resp := &types.ValidationHistoryResp{Validations: []types.ValidationItem{}}
	if l.svcCtx.History == nil {
		return resp, nil
	}

	validations, err := l.svcCtx.History.ListValidations(l.ctx, req.SessionID, clampLimit(req.Limit))
	if err != nil {
		return nil, errs.Internal(err)
	}
	for _, v := range validations {
		resp.Validations = append(resp.Validations, types.ValidationItem{
			ID:        v.ID,
			SessionID: v.SessionID,
			Request:   v.Request,
			Report:    v.Report,
			Model:     v.Model,
			CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
