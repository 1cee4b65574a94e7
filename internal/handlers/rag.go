package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/views"
)

// uploads above this size are rejected before reaching the backend
const maxUploadBytes = 20 << 20

type RagHandler struct {
	log    *zap.Logger
	client *api.Client
	health *services.HealthMonitor
}

func NewRagHandler(log *zap.Logger, client *api.Client, health *services.HealthMonitor) *RagHandler {
	return &RagHandler{log: log, client: client, health: health}
}

func (h *RagHandler) Show(c *gin.Context) {
	status, err := h.client.RAGStatus(c.Request.Context())
	if err != nil {
		h.log.Warn("Retriever status fetch failed", zap.Error(err))
		status = &api.RagStatus{RetrieverReady: h.health.RetrieverReady()}
	}
	renderPage(c, "Knowledge Base", h.client.Token() != "", h.health.Ready(), views.RagAdmin(status, csrfToken(c)))
}

func (h *RagHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Could not read the uploaded files").Render(c.Request.Context(), c.Writer)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Choose at least one document").Render(c.Request.Context(), c.Writer)
		return
	}

	uploads := make([]api.Upload, 0, len(files))
	for _, f := range files {
		if f.Size > maxUploadBytes {
			c.Header("HX-Retarget", "#toast-area")
			views.Toast("File too large: " + f.Filename).Render(c.Request.Context(), c.Writer)
			return
		}
		reader, err := f.Open()
		if err != nil {
			h.log.Error("Failed to open upload", zap.String("file", f.Filename), zap.Error(err))
			continue
		}
		defer reader.Close()
		uploads = append(uploads, api.Upload{Name: f.Filename, Content: reader})
	}
	if len(uploads) == 0 {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("No readable files in the upload").Render(c.Request.Context(), c.Writer)
		return
	}

	if err := h.client.IngestDocuments(c.Request.Context(), uploads); err != nil {
		handleAPIError(c, h.log, h.client, err, "Document upload")
		return
	}
	h.log.Info("Documents ingested", zap.Int("count", len(uploads)))
	views.Notice("Documents uploaded. Indexing runs in the background.").Render(c.Request.Context(), c.Writer)
}
