package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pledgevault/crowdfund-backend/internal/auth"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

func (h *Handler) create(c *gin.Context) {
	accountID := auth.AccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "caller not authenticated"})
		return
	}

	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.engine.CreateProject(c.Request.Context(), accountID, domain.CreateProjectRequest{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if h.cache != nil {
		if p, err := h.cache.Get(c.Request.Context(), id); err == nil && p != nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
			return
		}
	}

	p, err := h.engine.GetProject(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), p); err != nil {
			log.Printf("[warn] operation=cache_project project_id=%d error=%v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) percentage(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	pct, err := h.engine.FundingPercentage(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "percentage": pct})
}

func (h *Handler) ledgerEntry(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	account := c.Param("account")

	amount, err := h.engine.LedgerEntry(c.Request.Context(), id, account)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "account": account, "amount": amount})
}

func (h *Handler) events(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if h.audit == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "audit log not configured"})
		return
	}

	events, err := h.audit.ListByProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "events": events})
}

func (h *Handler) fund(c *gin.Context) {
	accountID := auth.AccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "caller not authenticated"})
		return
	}

	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req fundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.engine.Fund(c.Request.Context(), id, accountID, req.Amount)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "accepted": res.Accepted, "surplus": res.Surplus})
}

func (h *Handler) finalize(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	p, err := h.engine.Finalize(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) refund(c *gin.Context) {
	accountID := auth.AccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "caller not authenticated"})
		return
	}

	id, ok := h.projectID(c)
	if !ok {
		return
	}

	amount, err := h.engine.Refund(c.Request.Context(), id, accountID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "refunded": amount})
}

func (h *Handler) withdraw(c *gin.Context) {
	accountID := auth.AccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "caller not authenticated"})
		return
	}

	id, ok := h.projectID(c)
	if !ok {
		return
	}

	amount, err := h.engine.WithdrawCommitment(c.Request.Context(), id, accountID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "withdrawn": amount})
}

func (h *Handler) stats(c *gin.Context) {
	counters := h.engine.Counters(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "counters": counters})
}

func (h *Handler) projectID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) invalidate(c *gin.Context, id uint64) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request.Context(), id); err != nil {
		log.Printf("[warn] operation=invalidate_project project_id=%d error=%v", id, err)
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrDeadlineNotReached),
		errors.Is(err, domain.ErrAlreadyFinalized),
		errors.Is(err, domain.ErrNotFailed),
		errors.Is(err, domain.ErrNoFunds):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrTransferFailed):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
