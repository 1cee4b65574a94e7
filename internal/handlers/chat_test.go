package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

// A full 30-message log is far bigger than a 4 KiB cookie session;
// keeping it in the store means no message silently drops.
func TestChatLogHoldsFullHistory(t *testing.T) {
	s := store.NewMemStore()
	h := NewChatHandler(zap.NewNop(), s, nil, nil)

	var messages []views.ChatMessage
	for i := 0; i < maxChatMessages; i++ {
		messages = append(messages, views.ChatMessage{
			ID:     fmt.Sprintf("m%d", i),
			Sender: "you",
			Text:   strings.Repeat("a thoughtful reflection on the day ", 10),
			Time:   "12:00",
		})
	}
	h.saveLog(messages)

	raw, ok := s.Get(store.KeyChatLog)
	require.True(t, ok)
	assert.Greater(t, len(raw), 4096)

	loaded := h.loadLog()
	require.Len(t, loaded, maxChatMessages)
	assert.Equal(t, messages[0].ID, loaded[0].ID)
	assert.Equal(t, messages[len(messages)-1].Text, loaded[len(loaded)-1].Text)
}

func TestChatLogCapsOldestMessages(t *testing.T) {
	h := NewChatHandler(zap.NewNop(), store.NewMemStore(), nil, nil)

	var messages []views.ChatMessage
	for i := 0; i < maxChatMessages+5; i++ {
		messages = append(messages, views.ChatMessage{ID: fmt.Sprintf("m%d", i), Sender: "coach", Text: "hi"})
	}
	h.saveLog(messages)

	loaded := h.loadLog()
	require.Len(t, loaded, maxChatMessages)
	assert.Equal(t, "m5", loaded[0].ID)
}

func TestChatResetClearsLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemStore()
	h := NewChatHandler(zap.NewNop(), s, nil, nil)

	h.saveLog([]views.ChatMessage{{ID: "m1", Sender: "you", Text: "hello"}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/chat/reset", nil)
	h.Reset(c)
	// c.Status defers the write; the gin engine flushes it after handlers,
	// but a bare test context needs an explicit flush to reach the recorder.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/chat", w.Header().Get("HX-Redirect"))
	assert.Empty(t, h.loadLog())
}
