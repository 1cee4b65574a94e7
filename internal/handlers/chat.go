package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

// chat history cap; older messages roll off. The log lives in the
// store because 30 messages overflow a 4 KiB cookie session.
const maxChatMessages = 30

type ChatHandler struct {
	log    *zap.Logger
	store  store.Store
	client *api.Client
	health *services.HealthMonitor
}

func NewChatHandler(log *zap.Logger, s store.Store, client *api.Client, health *services.HealthMonitor) *ChatHandler {
	return &ChatHandler{log: log, store: s, client: client, health: health}
}

func (h *ChatHandler) Show(c *gin.Context) {
	messages := h.loadLog()
	if len(messages) == 0 {
		// Open with a coach question so the user is not staring at an
		// empty screen.
		turn, err := h.client.CoachQuestion(c.Request.Context(), api.CoachState{Facet: FocusFacet(h.store)})
		if err != nil {
			h.log.Warn("Coach opening question failed", zap.Error(err))
		} else {
			messages = append(messages, coachMessage(turn))
			h.saveLog(messages)
		}
	}
	renderPage(c, "Coach", h.client.Token() != "", h.health.Ready(), views.Chat(messages, csrfToken(c)))
}

func (h *ChatHandler) Send(c *gin.Context) {
	text := strings.TrimSpace(c.PostForm("message"))
	if text == "" {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Type a message first").Render(c.Request.Context(), c.Writer)
		return
	}

	messages := h.loadLog()
	userMsg := views.ChatMessage{
		ID:     uuid.NewString(),
		Sender: "you",
		Text:   text,
		Time:   time.Now().Format("15:04"),
	}
	messages = append(messages, userMsg)

	state := api.CoachState{Facet: FocusFacet(h.store)}
	if raw, ok := h.store.Get(store.KeyLastJournalEntry); ok {
		var entry struct {
			Text     string              `json:"text"`
			Analysis *api.AnalysisResult `json:"analysis"`
		}
		if err := json.Unmarshal([]byte(raw), &entry); err == nil && entry.Analysis != nil {
			state.Emotions = entry.Analysis.Emotions
			state.LastEntrySummary = entry.Text
		}
	}

	turn, err := h.client.CoachReply(c.Request.Context(), state, text)
	if err != nil {
		h.saveLog(messages)
		if api.IsAuth(err) {
			handleAPIError(c, h.log, h.client, err, "Coach")
			return
		}
		h.log.Warn("Coach reply failed", zap.Error(err), zap.String("kind", api.Classify(err).String()))
		messages = append(messages, views.ChatMessage{
			ID:     uuid.NewString(),
			Sender: "coach",
			Text:   "I couldn't reach the coach right now. Let's try again in a moment.",
			Time:   time.Now().Format("15:04"),
		})
		views.ChatTurn(messages[len(messages)-2:]).Render(c.Request.Context(), c.Writer)
		return
	}

	coachMsg := coachMessage(turn)
	messages = append(messages, coachMsg)
	h.saveLog(messages)
	views.ChatTurn([]views.ChatMessage{userMsg, coachMsg}).Render(c.Request.Context(), c.Writer)
}

func (h *ChatHandler) Reset(c *gin.Context) {
	if err := h.store.Delete(store.KeyChatLog); err != nil {
		h.log.Error("Failed to clear chat log", zap.Error(err))
	}
	c.Header("HX-Redirect", "/chat")
	c.Status(204)
}

func coachMessage(turn *api.CoachTurn) views.ChatMessage {
	text := turn.Question
	if turn.InsightLine != "" {
		text = turn.InsightLine + " " + text
	}
	return views.ChatMessage{
		ID:     uuid.NewString(),
		Sender: "coach",
		Text:   text,
		Time:   time.Now().Format("15:04"),
	}
}

func (h *ChatHandler) loadLog() []views.ChatMessage {
	raw, ok := h.store.Get(store.KeyChatLog)
	if !ok || raw == "" {
		return nil
	}
	var messages []views.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		h.log.Warn("Discarding unreadable chat log", zap.Error(err))
		return nil
	}
	return messages
}

func (h *ChatHandler) saveLog(messages []views.ChatMessage) {
	if len(messages) > maxChatMessages {
		messages = messages[len(messages)-maxChatMessages:]
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	if err := h.store.Set(store.KeyChatLog, string(raw)); err != nil {
		h.log.Error("Failed to save chat log", zap.Error(err))
	}
}
