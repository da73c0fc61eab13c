package main

import (
	"context"
	"database/sql"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pledgevault/crowdfund-backend/config"
	"github.com/pledgevault/crowdfund-backend/internal/auth"
	"github.com/pledgevault/crowdfund-backend/internal/bootstrap"
	"github.com/pledgevault/crowdfund-backend/internal/clock"
	"github.com/pledgevault/crowdfund-backend/internal/creators"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/cache"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/engine"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/notify"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/repository"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/sweep"
	"github.com/pledgevault/crowdfund-backend/internal/transfer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	var pool *pgxpool.Pool
	var sqlDB *sql.DB
	if cfg.Database.DSN != "" {
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pool.Close()

		sqlDB, err = bootstrap.OpenSQLDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Fatalf("open sql db: %v", err)
		}
		defer sqlDB.Close()
	} else {
		log.Println("DB_DSN not set, running without Postgres (allowlist authorization, no audit log)")
	}

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Warning: redis unavailable, running without cache and event publishing: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var authorizer engine.Authorizer
	if pool != nil {
		authorizer = creators.NewRepo(pool)
	} else {
		authorizer = auth.NewStaticAuthorizer(cfg.Auth.CreatorAllowlist)
	}

	transferer := transfer.NewRateLimited(
		transfer.NewClient(cfg.Transfer.GatewayURL),
		cfg.Transfer.RatePerSecond,
		cfg.Transfer.Burst,
	)

	systemClock := clock.NewSystem()

	sinks := notify.Fanout{notify.LogSink{}}
	if redisClient != nil {
		sinks = append(sinks, notify.NewRedisPublisher(redisClient))
	}

	var audit *repository.AuditRepository
	if sqlDB != nil {
		audit = repository.NewAuditRepository(sqlDB)
		if err := audit.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure audit schema: %v", err)
		}
		sinks = append(sinks, audit)
	}

	eng := engine.New(engine.NewStore(), authorizer, transferer, systemClock, sinks)

	var firebaseAuth *fbauth.Client
	if cfg.Auth.Mode == "firebase" {
		firebaseAuth, err = auth.InitializeFirebase(&cfg.Auth)
		if err != nil {
			log.Fatalf("initialize firebase: %v", err)
		}
	}

	var projectCache *cache.ProjectCache
	if redisClient != nil {
		projectCache = cache.NewProjectCache(redisClient, 0)
	}

	if cfg.Sweeper.Enabled {
		sweeper := sweep.NewSweeper(eng, systemClock, cfg.Sweeper.CronSpec)
		c, err := sweeper.Start()
		if err != nil {
			log.Fatalf("start sweeper: %v", err)
		}
		defer c.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  "crowdfund-backend",
		Version:      cfg.App.Version,
		Engine:       eng,
		Cache:        projectCache,
		Audit:        audit,
		DB:           pool,
		Redis:        redisClient,
		AuthMode:     cfg.Auth.Mode,
		FirebaseAuth: firebaseAuth,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
