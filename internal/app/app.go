// Package app builds the process-wide state once at startup and tears it down on shutdown.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/handlers"
	"github.com/litey/litey-go/internal/config"
	"github.com/litey/litey-go/internal/database"
	"github.com/litey/litey-go/internal/imageproxy"
	"github.com/litey/litey-go/internal/ngwords"
	"github.com/litey/litey-go/internal/notes"
	"github.com/litey/litey-go/internal/render"
	"github.com/litey/litey-go/internal/static"
	"github.com/litey/litey-go/pkg/logger"
	"github.com/litey/litey-go/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const mongoConnectAttempts = 5

// App owns every long-lived dependency of the server.
type App struct {
	cfg       *config.Config
	startedAt time.Time

	mongo *mongo.Client
	redis *redis.Client

	Notes   *notes.Service
	NGWords *ngwords.Service
	Limiter middleware.Limiter
	Proxy   *imageproxy.Proxy
	Static  *static.Resolver
}

// New connects the configured backends. Any connection failure is returned;
// the caller decides whether it is fatal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		cfg:       cfg,
		startedAt: time.Now(),
		Proxy:     imageproxy.New(cfg.ImageProxy),
		Static:    static.NewResolver(cfg.Static.Root, cfg.Static.Indexes),
	}

	if err := a.initStore(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}
	if err := a.initLimiter(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) initStore(ctx context.Context) error {
	if a.cfg.MongoDB.Backend == "memory" {
		logger.Warnf("STORE_BACKEND=memory: notes and ng words are kept in process only")
		a.Notes = notes.NewService(notes.NewMemoryRepository())
		a.NGWords = ngwords.NewService(ngwords.NewMemoryRepository())
		return nil
	}

	client, err := database.ConnectMongoWithRetry(ctx, a.cfg.MongoDB, mongoConnectAttempts)
	if err != nil {
		return err
	}
	a.mongo = client
	db := client.Database(a.cfg.MongoDB.Database)

	ngRepo, err := ngwords.NewMongoRepository(ctx, db.Collection("ngs"))
	if err != nil {
		return err
	}
	a.Notes = notes.NewService(notes.NewMongoRepository(db.Collection("notes")))
	a.NGWords = ngwords.NewService(ngRepo)
	logger.Infof("connected to MongoDB database %q", a.cfg.MongoDB.Database)
	return nil
}

func (a *App) initLimiter(ctx context.Context) error {
	rl := a.cfg.RateLimit
	if rl.Backend == "memory" {
		logger.Warnf("RATE_LIMIT_BACKEND=memory: limits are per process and reset on restart")
		a.Limiter = middleware.NewMemoryLimiter(rl.Times, rl.Window)
		return nil
	}

	opts, err := redis.ParseURL(a.cfg.Redis.URI)
	if err != nil {
		return fmt.Errorf("parse REDIS_URI: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	a.redis = client
	a.Limiter = middleware.NewRedisLimiter(client, "litey:rl:", rl.Times, rl.Window)
	logger.Infof("connected to Redis at %s", opts.Addr)
	return nil
}

// Router builds the gin engine with every route registered.
func (a *App) Router() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(), middleware.CORS("/api/"))

	if err := render.Load(r, a.cfg.Templates.Dir); err != nil {
		return nil, fmt.Errorf("load templates from %s: %w", a.cfg.Templates.Dir, err)
	}

	handlers.RegisterOps(r, a.startedAt, a.checks())
	handlers.RegisterSwagger(r)
	handlers.NewHandler(a.Notes, a.NGWords, a.Limiter, a.Proxy, a.Static).Register(r)
	return r, nil
}

func (a *App) checks() map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if a.mongo != nil {
		checks["mongo"] = func(ctx context.Context) error { return a.mongo.Ping(ctx, nil) }
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	return checks
}

// Close releases the store connections. Safe to call on a partially built App.
func (a *App) Close(ctx context.Context) {
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
		a.mongo = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnf("redis close: %v", err)
		}
		a.redis = nil
	}
}
