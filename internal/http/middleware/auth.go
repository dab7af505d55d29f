package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hsadv/quotes-service/internal/auth"
	"github.com/hsadv/quotes-service/internal/model"
	"github.com/hsadv/quotes-service/internal/security"
)

const principalKey = "principal"

// Auth guards administrative routes with a Bearer JWT. Failed attempts are
// recorded in the security monitor.
func Auth(parser *auth.Parser, monitor *security.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			recordUnauthorized(monitor, c, "missing bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := parser.Parse(token)
		if err != nil {
			recordUnauthorized(monitor, c, "invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

func recordUnauthorized(monitor *security.Monitor, c *gin.Context, reason string) {
	if monitor == nil {
		return
	}
	monitor.Record(security.Event{
		Type:      security.EventUnauthorizedAccess,
		IP:        ClientIP(c),
		UserAgent: c.Request.UserAgent(),
		URL:       c.Request.URL.Path,
		Method:    c.Request.Method,
		Severity:  security.SeverityMedium,
		Details:   map[string]string{"reason": reason},
	})
}
