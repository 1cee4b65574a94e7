package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/checkin"
	"github.com/MathiasEthan/RaAI/internal/models"
	"github.com/MathiasEthan/RaAI/internal/mood"
	"github.com/MathiasEthan/RaAI/internal/repository"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

const checkinSessionKey = "checkin_state"

// checkinState is the in-progress questionnaire position, kept in the
// session until completion.
type checkinState struct {
	Index      int   `json:"index"`
	Selections []int `json:"selections"`
}

type CheckinHandler struct {
	log           *zap.Logger
	questionnaire *models.Questionnaire
	store         store.Store
	client        *api.Client
	health        *services.HealthMonitor
	useDB         bool
}

func NewCheckinHandler(log *zap.Logger, q *models.Questionnaire, s store.Store, client *api.Client, health *services.HealthMonitor, useDB bool) *CheckinHandler {
	return &CheckinHandler{log: log, questionnaire: q, store: s, client: client, health: health, useDB: useDB}
}

// Start shows the first unanswered question, or the already-done notice
// when a check-in exists for today. The dedup check runs before any
// scoring happens.
func (h *CheckinHandler) Start(c *gin.Context) {
	now := time.Now()
	if checkin.CompletedToday(h.store, now) {
		score, _ := checkin.DailyScore(h.store)
		component := views.CheckinAlready(score, mood.SentimentLabel(score), mood.SentimentColor(score))
		renderPage(c, "Today", h.loggedIn(), h.health.Ready(), component)
		return
	}

	state := h.loadState(c)
	h.renderQuestion(c, state)
}

// Next records the answer for the current question and advances, or
// completes the check-in after the last question.
func (h *CheckinHandler) Next(c *gin.Context) {
	now := time.Now()
	if checkin.CompletedToday(h.store, now) {
		score, _ := checkin.DailyScore(h.store)
		views.CheckinAlready(score, mood.SentimentLabel(score), mood.SentimentColor(score)).Render(c.Request.Context(), c.Writer)
		return
	}

	state := h.loadState(c)

	if raw := c.PostForm("answer"); raw != "" {
		if sel, err := strconv.Atoi(raw); err == nil {
			state.Selections[state.Index] = sel
		}
	}

	if state.Index+1 < len(h.questionnaire.Questions) {
		state.Index++
		h.saveState(c, state)
		h.renderQuestion(c, state)
		return
	}

	h.complete(c, now, state)
}

// Prev steps back one question without losing the current selections.
func (h *CheckinHandler) Prev(c *gin.Context) {
	state := h.loadState(c)
	if state.Index > 0 {
		state.Index--
	}
	h.saveState(c, state)
	h.renderQuestion(c, state)
}

func (h *CheckinHandler) complete(c *gin.Context, now time.Time, state *checkinState) {
	score := checkin.Score(h.questionnaire, state.Selections)

	if err := checkin.SaveResult(h.store, now, state.Selections, score); err != nil {
		h.log.Error("Failed to persist check-in result", zap.Error(err))
		c.String(http.StatusInternalServerError, "Could not save your check-in")
		return
	}
	if h.useDB {
		if err := repository.SaveCheckin(c.Request.Context(), now.Format(checkin.DateLayout), state.Selections, score); err != nil {
			h.log.Error("Failed to record check-in history", zap.Error(err))
		}
	}

	h.submitToBackend(now, state.Selections)
	h.clearState(c)

	component := views.CheckinComplete(score, mood.SentimentLabel(score), mood.SentimentColor(score))
	renderPage(c, "Today", h.loggedIn(), h.health.Ready(), component)
}

// submitToBackend forwards the raw selections so the backend can fold
// them into its own series. Best effort: the local result stands either
// way, and the user is never blocked on it.
func (h *CheckinHandler) submitToBackend(now time.Time, selections []int) {
	user, err := h.currentUser()
	if err != nil {
		h.log.Debug("Skipping backend check-in submission", zap.Error(err))
		return
	}

	answers := make(map[string]float64, len(h.questionnaire.Questions))
	for i, q := range h.questionnaire.Questions {
		if i < len(selections) && selections[i] != checkin.Unanswered {
			answers[q.ID] = float64(selections[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := h.client.SubmitCheckin(ctx, user.ID, answers, now.Format(checkin.DateLayout))
	if err != nil {
		h.log.Warn("Backend check-in submission failed", zap.Error(err), zap.String("kind", api.Classify(err).String()))
		return
	}

	if raw, err := json.Marshal(result); err == nil {
		h.store.Set(store.KeyLastCheckinResult, string(raw))
	}
}

func (h *CheckinHandler) currentUser() (*api.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.client.Me(ctx)
}

func (h *CheckinHandler) renderQuestion(c *gin.Context, state *checkinState) {
	question := h.questionnaire.Questions[state.Index]
	component := views.CheckinQuestion(question, state.Index, len(h.questionnaire.Questions), state.Selections[state.Index], csrfToken(c))
	renderPage(c, "Today", h.loggedIn(), h.health.Ready(), component)
}

func (h *CheckinHandler) loggedIn() bool {
	return h.client.Token() != ""
}

func (h *CheckinHandler) loadState(c *gin.Context) *checkinState {
	session := sessions.Default(c)
	state := &checkinState{}
	if raw, ok := session.Get(checkinSessionKey).(string); ok {
		if err := json.Unmarshal([]byte(raw), state); err == nil &&
			len(state.Selections) == len(h.questionnaire.Questions) &&
			state.Index >= 0 && state.Index < len(h.questionnaire.Questions) {
			return state
		}
	}

	state.Index = 0
	state.Selections = make([]int, len(h.questionnaire.Questions))
	for i := range state.Selections {
		state.Selections[i] = checkin.Unanswered
	}
	return state
}

func (h *CheckinHandler) saveState(c *gin.Context, state *checkinState) {
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	session := sessions.Default(c)
	session.Set(checkinSessionKey, string(raw))
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save check-in session state", zap.Error(err))
	}
}

func (h *CheckinHandler) clearState(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(checkinSessionKey)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear check-in session state", zap.Error(err))
	}
}
