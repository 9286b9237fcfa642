package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"ideaforge-api/internal/errs"
	"ideaforge-api/internal/session"
	"ideaforge-api/internal/svc"
	"ideaforge-api/internal/types"
	"ideaforge-api/pkg/advisor"
)

type SessionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SessionLogic {
	return &SessionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SessionLogic) GetSession(req *types.SessionReq) (*types.SessionResp, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, errs.Invalid(errors.New("session id is required"))
	}

	state, err := l.svcCtx.Sessions.Get(l.ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, errs.NotFound("session not found")
		}
		return nil, errs.Internal(err)
	}

	return &types.SessionResp{
		SessionID:         id,
		Ideas:             state.Ideas,
		PendingValidation: state.PendingValidation,
		LastValidation:    state.LastValidation,
		UpdatedAt:         state.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// QueuePendingValidation marks one of the session's generated ideas as the
// next validation candidate. The idea's name and description prefill the
// pending request; validating any idea afterwards consumes the slot.
func (l *SessionLogic) QueuePendingValidation(req *types.QueueValidationReq) (*types.SessionResp, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, errs.Invalid(errors.New("session id is required"))
	}

	state, err := l.svcCtx.Sessions.Get(l.ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, errs.NotFound("session not found")
		}
		return nil, errs.Internal(err)
	}
	if req.IdeaIndex < 0 || req.IdeaIndex >= len(state.Ideas) {
		return nil, errs.Invalid(fmt.Errorf("idea_index %d out of range, session has %d ideas", req.IdeaIndex, len(state.Ideas)))
	}

	idea := state.Ideas[req.IdeaIndex]
	state.PendingValidation = &advisor.ValidateRequest{
		Name:         idea.Name,
		Description:  idea.Description,
		TargetMarket: strings.TrimSpace(req.TargetMarket),
	}
	if err := l.svcCtx.Sessions.Put(l.ctx, id, state); err != nil {
		return nil, errs.Internal(err)
	}

	return &types.SessionResp{
		SessionID:         id,
		Ideas:             state.Ideas,
		PendingValidation: state.PendingValidation,
		LastValidation:    state.LastValidation,
		UpdatedAt:         state.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (l *SessionLogic) ResetSession(req *types.SessionReq) (*types.SessionResetResp, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, errs.Invalid(errors.New("session id is required"))
	}

	// Clearing an absent session is not an error; the outcome is the same.
	if err := l.svcCtx.Sessions.Clear(l.ctx, id); err != nil {
		return nil, errs.Internal(err)
	}
	return &types.SessionResetResp{SessionID: id, Cleared: true}, nil
}
