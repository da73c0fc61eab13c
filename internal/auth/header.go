package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderIdentity trusts the X-Account-Id header as the caller's account id.
// Use this ONLY for development/testing; production deployments run the
// firebase middleware instead.
func HeaderIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := strings.TrimSpace(c.GetHeader("X-Account-Id"))
		if accountID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing X-Account-Id header"})
			c.Abort()
			return
		}

		c.Set(CtxAccountID, accountID)

		c.Next()
	}
}
