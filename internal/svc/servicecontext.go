package svc

import (
	"database/sql"
	"log"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "ideaforge-api/internal/cache"
	"ideaforge-api/internal/config"
	"ideaforge-api/internal/repo"
	"ideaforge-api/internal/session"
	advisorpkg "ideaforge-api/pkg/advisor"
	"ideaforge-api/pkg/confkit"
	llmpkg "ideaforge-api/pkg/llm"
)

type ServiceContext struct {
	Config config.Config

	LLMConfig     *llmpkg.Config
	LLMClient     llmpkg.LLMClient
	AdvisorConfig *advisorpkg.Config
	Advisor       advisorpkg.Advisor

	Sessions session.Store
	TTL      cachekeys.TTLSet

	// Cache serves derived payloads (analytics charts). Nil without Redis;
	// consumers fall back to recomputing.
	Cache cachekeys.Cache

	// History is nil when Postgres is not configured; handlers degrade to
	// session-only behaviour.
	DBConn  sqlx.SqlConn
	History repo.HistoryRepo
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	llmCfg := c.LLM.Value
	if llmCfg == nil {
		// No section file configured; fall back to environment variables.
		cfg, err := llmpkg.LoadConfigFromEnv()
		if err != nil {
			log.Fatalf("failed to load llm config from environment: %v", err)
		}
		llmCfg = cfg
	}
	// Test environment always routes through the free tier.
	if c.IsTestEnv() && llmpkg.ModelVariant(llmCfg.DefaultModel) != "free" {
		llmCfg.DefaultModel = "mistralai/mistral-small-3.2-24b-instruct:free"
	}
	svc.LLMConfig = llmCfg

	client, err := llmpkg.NewClient(llmCfg)
	if err != nil {
		log.Fatalf("failed to init llm client: %v", err)
	}
	svc.LLMClient = client

	advisorCfg := c.Advisor.Value
	if advisorCfg == nil {
		advisorCfg = advisorpkg.MustLoad()
	}
	// Template paths are stored repo-relative; anchor them so the server can
	// start from any working directory.
	if !filepath.IsAbs(advisorCfg.IdeasTemplate) {
		advisorCfg.IdeasTemplate = confkit.MustProjectPath(advisorCfg.IdeasTemplate)
	}
	if !filepath.IsAbs(advisorCfg.ValidateTemplate) {
		advisorCfg.ValidateTemplate = confkit.MustProjectPath(advisorCfg.ValidateTemplate)
	}
	svc.AdvisorConfig = advisorCfg

	adv, err := advisorpkg.NewAdvisor(advisorCfg, client)
	if err != nil {
		log.Fatalf("failed to init advisor: %v", err)
	}
	svc.Advisor = adv

	sessionTTL := cachekeys.SessionTTL(c.Session)
	var redisClient *redis.Redis
	if len(c.Redis.Host) > 0 {
		redisClient = redis.MustNewRedis(c.Redis)
		svc.Sessions = session.NewRedisStore(redisClient, sessionTTL)
	} else {
		svc.Sessions = session.NewMemoryStore(sessionTTL)
	}

	// History persistence only when a DSN is provided.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		if err := configurePool(conn, c.Postgres); err != nil {
			log.Fatalf("failed to configure db pool: %v", err)
		}
		svc.DBConn = conn

		var rowCache cache.Cache
		if redisClient != nil {
			rowCache = cache.NewNode(redisClient, syncx.NewSingleFlight(), cache.NewStat(cachekeys.Namespace), repo.ErrNotFound)
			svc.Cache = rowCache
		}
		history, err := repo.NewHistoryRepo(conn, rowCache, svc.TTL)
		if err != nil {
			log.Fatalf("failed to init history repo: %v", err)
		}
		svc.History = history
	}

	return svc
}

// rawDBProvider is the slice of sqlx.SqlConn needed to reach the underlying
// database handle.
type rawDBProvider interface {
	RawDB() (*sql.DB, error)
}

// configurePool applies the configured connection limits to the underlying
// database handle. Acquiring the handle also pings the server, so a bad DSN
// fails here at startup instead of on the first query.
func configurePool(conn rawDBProvider, cfg config.PostgresConf) error {
	db, err := conn.RawDB()
	if err != nil {
		return err
	}
	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	return nil
}
