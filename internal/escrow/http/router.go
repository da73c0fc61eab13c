package http

import "github.com/gin-gonic/gin"

// Register attaches escrow routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.POST("", h.create)
	projects.GET("/:id", h.get)
	projects.GET("/:id/percentage", h.percentage)
	projects.GET("/:id/ledger/:account", h.ledgerEntry)
	projects.GET("/:id/events", h.events)
	projects.POST("/:id/fund", h.fund)
	projects.POST("/:id/finalize", h.finalize)
	projects.POST("/:id/refund", h.refund)
	projects.POST("/:id/withdraw", h.withdraw)

	rg.GET("/stats", h.stats)
}
