package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/pledgevault/crowdfund-backend/internal/api/http"
	"github.com/pledgevault/crowdfund-backend/internal/api/http/middleware"
	"github.com/pledgevault/crowdfund-backend/internal/auth"
	authmw "github.com/pledgevault/crowdfund-backend/internal/auth/middleware"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/cache"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/engine"
	escrowhttp "github.com/pledgevault/crowdfund-backend/internal/escrow/http"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Engine      *engine.Engine
	Cache       *cache.ProjectCache
	Audit       *repository.AuditRepository
	DB          *pgxpool.Pool
	Redis       *redis.Client

	// AuthMode is "firebase" or "header"; FirebaseAuth must be set for the
	// former.
	AuthMode     string
	FirebaseAuth *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	if dep.AuthMode == "firebase" && dep.FirebaseAuth != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.FirebaseAuth))
	} else {
		api.Use(auth.HeaderIdentity())
	}

	escrowHandler := escrowhttp.New(dep.Engine, dep.Cache, dep.Audit)
	escrowHandler.Register(api)

	return r
}
