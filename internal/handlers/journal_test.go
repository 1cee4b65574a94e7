package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/store"
)

// A multi-paragraph entry with analysis attached runs well past the
// 4 KiB a cookie session could carry; the pending stash lives in the
// store so entry size never blocks a save.
func TestStashAndSaveLongEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := store.NewMemStore()
	h := NewJournalHandler(zap.NewNop(), s, nil, nil)

	text := strings.Repeat("Today was a long day and I wrote about it at length. ", 200)
	h.stashEntry(text, &api.AnalysisResult{Sentiment: 6.1}, 6.1, &api.SafetyResult{Label: api.SafetySafe})

	raw, ok := s.Get(store.KeyPendingJournal)
	require.True(t, ok)
	assert.Greater(t, len(raw), 4096)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/journal/save", nil)
	h.Save(c)

	assert.Contains(t, w.Body.String(), "Journal entry saved!")

	saved, ok := s.Get(store.KeyLastJournalEntry)
	require.True(t, ok)
	var entry journalEntry
	require.NoError(t, json.Unmarshal([]byte(saved), &entry))
	assert.Equal(t, text, entry.Text)
	assert.Equal(t, 6.1, entry.MoodScore)
}

func TestSaveWithoutPendingEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(zap.NewNop(), store.NewMemStore(), nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/journal/save", nil)
	h.Save(c)

	assert.Contains(t, w.Body.String(), "Nothing to save yet")
}
