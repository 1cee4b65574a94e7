package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/views"
)

type CommunityHandler struct {
	log    *zap.Logger
	client *api.Client
	health *services.HealthMonitor
}

func NewCommunityHandler(log *zap.Logger, client *api.Client, health *services.HealthMonitor) *CommunityHandler {
	return &CommunityHandler{log: log, client: client, health: health}
}

func (h *CommunityHandler) Show(c *gin.Context) {
	renderPage(c, "Community", h.client.Token() != "", h.health.Ready(), views.Community(csrfToken(c)))
}

func (h *CommunityHandler) Matches(c *gin.Context) {
	matches, err := h.client.MentorMatches(c.Request.Context(), 3)
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Mentor matching")
		return
	}
	views.MentorMatches(matches, csrfToken(c)).Render(c.Request.Context(), c.Writer)
}

func (h *CommunityHandler) Accept(c *gin.Context) {
	mentorID := c.PostForm("mentor_id")
	if mentorID == "" {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Missing mentor id").Render(c.Request.Context(), c.Writer)
		return
	}
	if err := h.client.AcceptMentorMatch(c.Request.Context(), mentorID); err != nil {
		handleAPIError(c, h.log, h.client, err, "Accepting mentor")
		return
	}
	h.log.Info("Mentor match accepted", zap.String("mentor_id", mentorID))
	views.Notice("Mentor request sent. They'll be in touch soon.").Render(c.Request.Context(), c.Writer)
}

func (h *CommunityHandler) Rewrite(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Paste a message to rewrite first").Render(c.Request.Context(), c.Writer)
		return
	}
	intent := c.DefaultPostForm("intent", "empathetic")

	result, err := h.client.RewriteMessage(c.Request.Context(), text, intent)
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Message rewrite")
		return
	}
	views.RewriteResult(result).Render(c.Request.Context(), c.Writer)
}
