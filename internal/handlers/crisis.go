package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/cache"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/views"
)

const crisisCacheKey = "crisis:resources:en-US"

type CrisisHandler struct {
	log    *zap.Logger
	client *api.Client
	cache  *cache.Cache
	health *services.HealthMonitor
}

func NewCrisisHandler(log *zap.Logger, client *api.Client, c *cache.Cache, health *services.HealthMonitor) *CrisisHandler {
	return &CrisisHandler{log: log, client: client, cache: c, health: health}
}

// Show renders the crisis page. The hotline numbers are rendered
// statically in the view, so a backend failure still leaves the user
// with somewhere to call.
func (h *CrisisHandler) Show(c *gin.Context) {
	var resources map[string]api.CrisisCategory
	if !h.cache.GetJSON(c.Request.Context(), crisisCacheKey, &resources) {
		fetched, err := h.client.CrisisResources(c.Request.Context(), "en-US", "")
		if err != nil {
			h.log.Warn("Crisis resources fetch failed, serving static fallback", zap.Error(err))
		} else {
			resources = fetched
			h.cache.SetJSON(c.Request.Context(), crisisCacheKey, resources, 12*time.Hour)
		}
	}
	renderPage(c, "Crisis Support", h.client.Token() != "", h.health.Ready(), views.Crisis(resources))
}
