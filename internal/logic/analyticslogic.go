package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "ideaforge-api/internal/cache"
	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/repo"
	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
	"ideaforge-api/pkg/advisor"
)

type AnalyticsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAnalyticsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AnalyticsLogic {
	return &AnalyticsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AnalyticsLogic) Analytics(req *types.AnalyticsReq) (*types.AnalyticsResp, error) {
	if req.ID <= 0 {
		return nil, errs.Invalid(errors.New("validation id must be positive"))
	}
	if l.svcCtx.History == nil {
		return nil, errs.NotFound("validation history is not enabled")
	}

	// Validation rows are immutable once written, so a cached chart payload
	// never goes stale within its TTL.
	key := cachekeys.AnalyticsKey(req.ID)
	if c := l.svcCtx.Cache; c != nil {
		var cached advisor.Analytics
		err := c.GetCtx(l.ctx, key, &cached)
		if err == nil {
			return &types.AnalyticsResp{ValidationID: req.ID, Analytics: &cached}, nil
		}
		if !c.IsNotFound(err) {
			l.Errorf("get analytics cache %s: %v", key, err)
		}
	}

	rec, err := l.svcCtx.History.GetValidation(l.ctx, req.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.NotFound("validation not found")
		}
		return nil, errs.Internal(err)
	}

	analytics := advisor.BuildAnalytics(&rec.Report)
	if c := l.svcCtx.Cache; c != nil {
		if err := c.SetWithExpireCtx(l.ctx, key, analytics, cachekeys.AnalyticsTTL(l.svcCtx.TTL)); err != nil {
			l.Errorf("set analytics cache %s: %v", key, err)
		}
	}

	return &types.AnalyticsResp{
		ValidationID: rec.ID,
		Analytics:    analytics,
	}, nil
}
