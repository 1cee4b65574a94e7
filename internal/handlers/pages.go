package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/views"
)

type PagesHandler struct {
	client *api.Client
	health *services.HealthMonitor
}

func NewPagesHandler(client *api.Client, health *services.HealthMonitor) *PagesHandler {
	return &PagesHandler{client: client, health: health}
}

func (h *PagesHandler) Home(c *gin.Context) {
	renderPage(c, "Ra.AI", h.client.Token() != "", h.health.Ready(), views.Home())
}

func (h *PagesHandler) LearnMore(c *gin.Context) {
	renderPage(c, "About Ra.AI", h.client.Token() != "", h.health.Ready(), views.LearnMore())
}
