package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (*types.HealthResp, error) {
	model := ""
	if l.svcCtx.LLMConfig != nil {
		model = l.svcCtx.LLMConfig.DefaultModel
	}
	return &types.HealthResp{
		Status: "ok",
		Env:    l.svcCtx.Config.Env,
		Model:  model,
	}, nil
}
