package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/flowvault/flowvault/pkg/audit"
	"github.com/flowvault/flowvault/pkg/config"
	"github.com/flowvault/flowvault/pkg/email"
	"github.com/flowvault/flowvault/pkg/email/templates"
	"github.com/flowvault/flowvault/pkg/httpserver"
	"github.com/flowvault/flowvault/pkg/logger"
	"github.com/flowvault/flowvault/pkg/mongo"
	"github.com/flowvault/flowvault/pkg/notifier"
	"github.com/flowvault/flowvault/pkg/pg"
	"github.com/flowvault/flowvault/pkg/redis"
	"github.com/flowvault/flowvault/pkg/registry"
	"github.com/flowvault/flowvault/pkg/router"
	"github.com/flowvault/flowvault/pkg/userstore"
	"github.com/flowvault/flowvault/pkg/webhook"
	"github.com/flowvault/flowvault/pkg/ws"
)

func main() {
	ctx := context.Background()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("app", "flowvault")))
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	// Audit storage backend, selected by config.
	var (
		storage      audit.Storage
		healthProbes []func(context.Context) error
	)
	switch cfg.AuditDriver {
	case auditDriverPostgres:
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)

		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return err
		}

		pgStorage, err := audit.NewPGStorage(pool)
		if err != nil {
			return err
		}
		storage = pgStorage
		healthProbes = append(healthProbes, pg.Healthcheck(pool))

	case auditDriverMongo:
		var mongoCfg mongo.Config
		config.MustLoad(&mongoCfg)

		db, err := mongo.NewWithDatabase(ctx, mongoCfg, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer func() { _ = db.Client().Disconnect(ctx) }()

		mongoStorage, err := audit.NewMongoStorage(db)
		if err != nil {
			return err
		}
		if err := mongoStorage.EnsureIndexes(ctx); err != nil {
			return err
		}
		storage = mongoStorage
		healthProbes = append(healthProbes, mongo.Healthcheck(db.Client()))

	default:
		storage = audit.NewMemoryStorage()
	}

	buffered := audit.NewAsyncStorage(storage, audit.WithAsyncLogger(log))
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := buffered.Close(flushCtx); err != nil {
			log.Error("audit flush on shutdown failed", logger.Error(err))
		}
	}()

	recorder := audit.MustNewRecorder(buffered)

	// User store: file-seeded memory store, optionally fronted by Redis.
	memStore := userstore.NewMemory()
	if cfg.UsersFile != "" {
		n, err := loadUsers(cfg.UsersFile, memStore)
		if err != nil {
			return err
		}
		log.Info("user store seeded", slog.Int("users", n))
	}

	var users userstore.Store = memStore
	if cfg.UserCacheEnabled {
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)

		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		users = userstore.NewCache(memStore, client, 0, userstore.WithCacheLogger(log))
		healthProbes = append(healthProbes, redis.Healthcheck(client))
	}

	// Mail transport.
	var mailer email.EmailSender
	switch cfg.EmailDriver {
	case emailDriverPostmark:
		var emailCfg email.Config
		config.MustLoad(&emailCfg)
		mailer = email.MustNewPostmarkClient(emailCfg)
	default:
		mailer = email.NewDevSender(cfg.DevMailDir)
	}

	// Registry, routing, and the three channel senders.
	reg := registry.New(registry.WithLogger(log))
	rooms := router.New(reg)

	senders := []notifier.ChannelSender{
		notifier.NewPushSender(notifier.WithPushLogger(log)),
		notifier.NewEmailSender(templates.New(), mailer),
		notifier.NewWebhookSender(webhook.NewSender()),
	}

	dispatcher := notifier.NewDispatcher(rooms, users, senders,
		notifier.WithAuditSink(recorder),
		notifier.WithLogger(log),
	)

	verifier := newHMACTokenVerifier(cfg.TokenSecret)
	wsHandler := ws.NewHandler(reg, verifier, ws.WithLogger(log))

	routes := []route{
		{method: http.MethodGet, path: "/healthz", handler: httpserver.HealthCheckHandler(ctx, log, healthProbes...)},
		{method: http.MethodGet, path: "/ws", handler: wsHandler},
		{method: http.MethodGet, path: "/stats", handler: handleStats(reg), guards: []guard{requireAuth(verifier), requireAdmin()}},
		{method: http.MethodPost, path: "/api/notifications", handler: handleDispatch(dispatcher, log), guards: []guard{requireAuth(verifier), requireAdmin()}},
		{method: http.MethodGet, path: "/api/audit", handler: handleAuditList(recorder), guards: []guard{requireAuth(verifier), requireAdmin()}},
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("server listening", slog.String("addr", cfg.HTTP.Addr), slog.String("env", cfg.Env))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("server stopped")
		}),
	)

	return srv.Run(ctx, buildRouter(routes))
}
