package http

import (
	"github.com/pledgevault/crowdfund-backend/internal/escrow/cache"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/engine"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/repository"
)

// Handler bundles the dependencies for escrow HTTP endpoints. Cache and
// audit are optional; nil disables the read cache and the events endpoint's
// backing store respectively.
type Handler struct {
	engine *engine.Engine
	cache  *cache.ProjectCache
	audit  *repository.AuditRepository
}

func New(eng *engine.Engine, projectCache *cache.ProjectCache, audit *repository.AuditRepository) *Handler {
	return &Handler{
		engine: eng,
		cache:  projectCache,
		audit:  audit,
	}
}

type createProjectReq struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	GoalAmount      int64  `json:"goal_amount"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type fundReq struct {
	Amount int64 `json:"amount"`
}
