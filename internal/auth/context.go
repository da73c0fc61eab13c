package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxAccountID is the gin context key holding the authenticated account id.
	CtxAccountID = "account_id"
)

// AccountID extracts the authenticated account id from the Gin context.
// It is set by the firebase middleware or the header identity middleware.
func AccountID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAccountID))
}
