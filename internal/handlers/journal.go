package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/mood"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

// journalEntry is what gets persisted under lastJournalEntry.
type journalEntry struct {
	Date      string              `json:"date"`
	Text      string              `json:"text"`
	Analysis  *api.AnalysisResult `json:"analysis,omitempty"`
	MoodScore float64             `json:"moodScore"`
	Safety    *api.SafetyResult   `json:"safetyResult,omitempty"`
}

type JournalHandler struct {
	log    *zap.Logger
	store  store.Store
	client *api.Client
	health *services.HealthMonitor
}

func NewJournalHandler(log *zap.Logger, s store.Store, client *api.Client, health *services.HealthMonitor) *JournalHandler {
	return &JournalHandler{log: log, store: s, client: client, health: health}
}

func (h *JournalHandler) Show(c *gin.Context) {
	renderPage(c, "Journal", h.client.Token() != "", h.health.Ready(), views.Journal(csrfToken(c)))
}

// Analyze sends the entry through the backend. An ESCALATE safety label
// is not an error: it is a successful response that suppresses the
// analysis display and renders the crisis panel instead.
func (h *JournalHandler) Analyze(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("journal"))
	if text == "" {
		views.Toast("Please write something in your journal first").Render(c.Request.Context(), c.Writer)
		return
	}

	result, err := h.client.AnalyzeEntry(c.Request.Context(), text, "", "")
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Journal analysis")
		return
	}

	if result.Safety.Label == api.SafetyEscalate {
		h.stashEntry(text, nil, 0, &result.Safety)
		views.CrisisPanel(result.Safety.Message).Render(c.Request.Context(), c.Writer)
		return
	}

	// The scalar mood score is a separate endpoint; fall back to the
	// analysis sentiment when it fails rather than discarding the whole
	// result.
	score, err := h.client.MoodScore(c.Request.Context(), text)
	if err != nil {
		h.log.Warn("Mood score fetch failed, using analysis sentiment", zap.Error(err))
		if result.Analysis != nil {
			score = result.Analysis.Sentiment
		}
	}

	h.stashEntry(text, result.Analysis, score, &result.Safety)
	views.JournalAnalysis(result, score, mood.SentimentLabel(score), mood.SentimentColor(score), csrfToken(c)).
		Render(c.Request.Context(), c.Writer)
}

// Save persists the last analyzed entry under lastJournalEntry.
func (h *JournalHandler) Save(c *gin.Context) {
	raw, ok := h.store.Get(store.KeyPendingJournal)
	if !ok || raw == "" {
		views.Toast("Nothing to save yet. Analyze an entry first.").Render(c.Request.Context(), c.Writer)
		return
	}

	if err := h.store.Set(store.KeyLastJournalEntry, raw); err != nil {
		h.log.Error("Failed to save journal entry", zap.Error(err))
		views.Toast("Failed to save journal entry").Render(c.Request.Context(), c.Writer)
		return
	}

	views.Notice("Journal entry saved!").Render(c.Request.Context(), c.Writer)
}

// stashEntry parks the analyzed entry under pendingJournal until the
// user confirms the save. Entries run to many kilobytes, so they go in
// the store rather than the cookie session, which tops out at 4 KiB.
func (h *JournalHandler) stashEntry(text string, analysis *api.AnalysisResult, score float64, safety *api.SafetyResult) {
	entry := journalEntry{
		Date:      time.Now().Format(time.RFC3339),
		Text:      text,
		Analysis:  analysis,
		MoodScore: score,
		Safety:    safety,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := h.store.Set(store.KeyPendingJournal, string(raw)); err != nil {
		h.log.Error("Failed to stash journal entry", zap.Error(err))
	}
}
