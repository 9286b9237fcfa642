package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "ideaforge-api/internal/cache"
	"ideaforge-api/pkg/advisor"
)

// ErrNotFound is returned when a requested history row does not exist.
var ErrNotFound = errors.New("repo: not found")

// IdeaBatchRecord is a persisted generation run.
type IdeaBatchRecord struct {
	ID        int64                   `json:"id"`
	SessionID string                  `json:"session_id"`
	Request   advisor.GenerateRequest `json:"request"`
	Ideas     []advisor.Idea          `json:"ideas"`
	Model     string                  `json:"model"`
	CreatedAt time.Time               `json:"created_at"`
}

// ValidationRecord is a persisted validation run.
type ValidationRecord struct {
	ID        int64                    `json:"id"`
	SessionID string                   `json:"session_id"`
	Request   advisor.ValidateRequest  `json:"request"`
	Report    advisor.ValidationReport `json:"report"`
	Model     string                   `json:"model"`
	CreatedAt time.Time                `json:"created_at"`
}

// HistoryRepo persists generation and validation runs to Postgres with a
// read-through Redis cache for single-row lookups.
type HistoryRepo interface {
	SaveIdeaBatch(ctx context.Context, rec *IdeaBatchRecord) (int64, error)
	GetIdeaBatch(ctx context.Context, id int64) (*IdeaBatchRecord, error)
	ListIdeaBatches(ctx context.Context, sessionID string, limit int) ([]IdeaBatchRecord, error)
	SaveValidation(ctx context.Context, rec *ValidationRecord) (int64, error)
	GetValidation(ctx context.Context, id int64) (*ValidationRecord, error)
	ListValidations(ctx context.Context, sessionID string, limit int) ([]ValidationRecord, error)
}

type historyRepo struct {
	conn  sqlx.SqlConn
	cache cache.Cache
	ttl   cachekeys.TTLSet
}

// NewHistoryRepo constructs the history repository. The cache may be nil, in
// which case every read hits Postgres.
func NewHistoryRepo(conn sqlx.SqlConn, c cache.Cache, ttl cachekeys.TTLSet) (HistoryRepo, error) {
	if conn == nil {
		return nil, errors.New("repo: missing db connection")
	}
	return &historyRepo{conn: conn, cache: c, ttl: ttl}, nil
}

func (r *historyRepo) getCache(ctx context.Context, key string, v interface{}) bool {
	if r.cache == nil {
		return false
	}
	if err := r.cache.GetCtx(ctx, key, v); err != nil {
		if !r.cache.IsNotFound(err) {
			logx.WithContext(ctx).Errorf("get cache %s: %v", key, err)
		}
		return false
	}
	return true
}

func (r *historyRepo) setCache(ctx context.Context, key string, ttl time.Duration, v interface{}) {
	if r.cache == nil || ttl <= 0 {
		return
	}
	if err := r.cache.SetWithExpireCtx(ctx, key, v, ttl); err != nil {
		logx.WithContext(ctx).Errorf("set cache %s: %v", key, err)
	}
}

type ideaBatchRow struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	Request   []byte    `db:"request"`
	Ideas     []byte    `db:"ideas"`
	Model     string    `db:"model"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *historyRepo) SaveIdeaBatch(ctx context.Context, rec *IdeaBatchRecord) (int64, error) {
	if rec == nil {
		return 0, errors.New("repo: nil idea batch")
	}
	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return 0, fmt.Errorf("historyRepo.SaveIdeaBatch encode request: %w", err)
	}
	ideasJSON, err := json.Marshal(rec.Ideas)
	if err != nil {
		return 0, fmt.Errorf("historyRepo.SaveIdeaBatch encode ideas: %w", err)
	}

	const q = `
INSERT INTO idea_batches (session_id, request, ideas, model)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	if err := r.conn.QueryRowCtx(ctx, &id, q, rec.SessionID, reqJSON, ideasJSON, rec.Model); err != nil {
		return 0, fmt.Errorf("historyRepo.SaveIdeaBatch insert: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *historyRepo) GetIdeaBatch(ctx context.Context, id int64) (*IdeaBatchRecord, error) {
	key := cachekeys.IdeaBatchKey(id)
	var cached IdeaBatchRecord
	if r.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	const q = `
SELECT id, session_id, request, ideas, model, created_at
FROM idea_batches
WHERE id = $1`

	var row ideaBatchRow
	if err := r.conn.QueryRowCtx(ctx, &row, q, id); err != nil {
		if errors.Is(err, sqlx.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("historyRepo.GetIdeaBatch query: %w", err)
	}

	rec, err := mapIdeaBatchRow(row)
	if err != nil {
		return nil, err
	}
	r.setCache(ctx, key, cachekeys.IdeaBatchTTL(r.ttl), rec)
	return rec, nil
}

func (r *historyRepo) ListIdeaBatches(ctx context.Context, sessionID string, limit int) ([]IdeaBatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `
SELECT id, session_id, request, ideas, model, created_at
FROM idea_batches
WHERE ($1 = '' OR session_id = $1)
ORDER BY created_at DESC
LIMIT $2`

	var rows []ideaBatchRow
	if err := r.conn.QueryRowsCtx(ctx, &rows, q, sessionID, limit); err != nil {
		return nil, fmt.Errorf("historyRepo.ListIdeaBatches query: %w", err)
	}

	result := make([]IdeaBatchRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := mapIdeaBatchRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, nil
}

func mapIdeaBatchRow(row ideaBatchRow) (*IdeaBatchRecord, error) {
	rec := &IdeaBatchRecord{
		ID:        row.ID,
		SessionID: row.SessionID,
		Model:     row.Model,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.Request, &rec.Request); err != nil {
		return nil, fmt.Errorf("historyRepo: decode request for batch %d: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Ideas, &rec.Ideas); err != nil {
		return nil, fmt.Errorf("historyRepo: decode ideas for batch %d: %w", row.ID, err)
	}
	return rec, nil
}

type validationRow struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	Request   []byte    `db:"request"`
	Report    []byte    `db:"report"`
	Model     string    `db:"model"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *historyRepo) SaveValidation(ctx context.Context, rec *ValidationRecord) (int64, error) {
	if rec == nil {
		return 0, errors.New("repo: nil validation")
	}
	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return 0, fmt.Errorf("historyRepo.SaveValidation encode request: %w", err)
	}
	reportJSON, err := json.Marshal(rec.Report)
	if err != nil {
		return 0, fmt.Errorf("historyRepo.SaveValidation encode report: %w", err)
	}

	const q = `
INSERT INTO validations (session_id, request, report, model)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	if err := r.conn.QueryRowCtx(ctx, &id, q, rec.SessionID, reqJSON, reportJSON, rec.Model); err != nil {
		return 0, fmt.Errorf("historyRepo.SaveValidation insert: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *historyRepo) GetValidation(ctx context.Context, id int64) (*ValidationRecord, error) {
	key := cachekeys.ValidationKey(id)
	var cached ValidationRecord
	if r.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	const q = `
SELECT id, session_id, request, report, model, created_at
FROM validations
WHERE id = $1`

	var row validationRow
	if err := r.conn.QueryRowCtx(ctx, &row, q, id); err != nil {
		if errors.Is(err, sqlx.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("historyRepo.GetValidation query: %w", err)
	}

	rec, err := mapValidationRow(row)
	if err != nil {
		return nil, err
	}
	r.setCache(ctx, key, cachekeys.ValidationTTL(r.ttl), rec)
	return rec, nil
}

func (r *historyRepo) ListValidations(ctx context.Context, sessionID string, limit int) ([]ValidationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `
SELECT id, session_id, request, report, model, created_at
FROM validations
WHERE ($1 = '' OR session_id = $1)
ORDER BY created_at DESC
LIMIT $2`

	var rows []validationRow
	if err := r.conn.QueryRowsCtx(ctx, &rows, q, sessionID, limit); err != nil {
		return nil, fmt.Errorf("historyRepo.ListValidations query: %w", err)
	}

	result := make([]ValidationRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := mapValidationRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, nil
}

func mapValidationRow(row validationRow) (*ValidationRecord, error) {
	rec := &ValidationRecord{
		ID:        row.ID,
		SessionID: row.SessionID,
		Model:     row.Model,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.Request, &rec.Request); err != nil {
		return nil, fmt.Errorf("historyRepo: decode request for validation %d: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Report, &rec.Report); err != nil {
		return nil, fmt.Errorf("historyRepo: decode report for validation %d: %w", row.ID, err)
	}
	return rec, nil
}
