package handlers

import (
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/views"
)

type AuthHandler struct {
	log    *zap.Logger
	client *api.Client
	health *services.HealthMonitor
}

func NewAuthHandler(log *zap.Logger, client *api.Client, health *services.HealthMonitor) *AuthHandler {
	return &AuthHandler{log: log, client: client, health: health}
}

// ShowLogin renders the login page. Sign-in itself happens on the
// backend's OAuth flow; this page links there and accepts the issued
// token.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.client.Token() != "" && !h.client.TokenExpired(time.Now()) {
		c.Redirect(302, "/today")
		return
	}
	renderPage(c, "Sign In", false, h.health.Ready(), views.Login(h.client.LoginURL(), csrfToken(c)))
}

// Login stores a backend-issued token. Accepts it from the posted form
// or from the callback query parameter.
func (h *AuthHandler) Login(c *gin.Context) {
	token := strings.TrimSpace(c.PostForm("token"))
	if token == "" {
		token = strings.TrimSpace(c.Query("token"))
	}
	if token == "" {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Paste the token from the sign-in page").Render(c.Request.Context(), c.Writer)
		return
	}

	if err := h.client.SetToken(token); err != nil {
		h.log.Error("Failed to persist auth token", zap.Error(err))
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Could not save your session. Try again.").Render(c.Request.Context(), c.Writer)
		return
	}

	// Confirm the token actually works before moving on.
	if _, err := h.client.Me(c.Request.Context()); err != nil {
		if api.IsAuth(err) {
			if clearErr := h.client.ClearToken(); clearErr != nil {
				h.log.Error("Failed to clear rejected token", zap.Error(clearErr))
			}
			c.Header("HX-Retarget", "#toast-area")
			views.Toast("That token was rejected. Sign in again.").Render(c.Request.Context(), c.Writer)
			return
		}
		h.log.Warn("Identity check failed after login", zap.Error(err))
	}

	h.log.Info("User signed in")
	if isHTMX(c) {
		c.Header("HX-Redirect", "/today")
		c.Status(204)
		return
	}
	c.Redirect(302, "/today")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.client.ClearToken(); err != nil {
		h.log.Error("Failed to clear auth token", zap.Error(err))
	}
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session", zap.Error(err))
	}
	h.log.Info("User signed out")
	if isHTMX(c) {
		c.Header("HX-Redirect", "/")
		c.Status(204)
		return
	}
	c.Redirect(302, "/")
}
