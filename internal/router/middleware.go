package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// AuthRequired gates routes that need a backend identity. Tokens are
// issued by the backend's OAuth flow and held by the client, so a
// missing or expired token just means "go sign in".
func AuthRequired(log *zap.Logger, client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := client.Token()
		if token == "" || client.TokenExpired(time.Now()) {
			if token != "" {
				log.Info("Expired token, redirecting to login")
				if err := client.ClearToken(); err != nil {
					log.Error("Failed to clear expired token", zap.Error(err))
				}
			}
			if c.GetHeader("HX-Request") == "true" {
				c.Header("HX-Redirect", "/login")
				c.AbortWithStatus(http.StatusUnauthorized)
			} else {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
			}
			return
		}
		c.Next()
	}
}
