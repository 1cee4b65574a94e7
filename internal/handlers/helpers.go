package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/views"
)

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func csrfToken(c *gin.Context) string {
	token, _ := c.Get("csrf_token")
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

func cspNonce(c *gin.Context) string {
	nonce, _ := c.Get("csp_nonce")
	if s, ok := nonce.(string); ok {
		return s
	}
	return ""
}

// renderPage wraps component in the layout for direct navigation, or
// renders it bare for HTMX fragment swaps.
func renderPage(c *gin.Context, title string, loggedIn, backendReady bool, component templ.Component) {
	if isHTMX(c) {
		component.Render(c.Request.Context(), c.Writer)
		return
	}
	views.Layout(title, loggedIn, backendReady, csrfToken(c), cspNonce(c)).Render(
		templ.WithChildren(c.Request.Context(), component),
		c.Writer,
	)
}

// handleAPIError is the shared failure policy for backend calls: log,
// classify, and either bounce to login on auth failures or surface a
// toast leaving the page state untouched.
func handleAPIError(c *gin.Context, log *zap.Logger, client *api.Client, err error, context string) {
	log.Error(context+" failed", zap.Error(err), zap.String("kind", api.Classify(err).String()))

	if api.IsAuth(err) {
		// Drop the stale token so the login page doesn't bounce back.
		if clearErr := client.ClearToken(); clearErr != nil {
			log.Error("Failed to clear stale token", zap.Error(clearErr))
		}
		if isHTMX(c) {
			c.Header("HX-Redirect", "/login")
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	message := context + " failed. Please try again."
	if api.IsNetwork(err) {
		message = "Network error. Please check your connection."
	}
	views.Toast(message).Render(c.Request.Context(), c.Writer)
}
