package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/store"
)

func TestFocusFacetPrefersStoredFocus(t *testing.T) {
	s := store.NewMemStore()
	raw, err := json.Marshal(api.BaselineResult{
		Focus: []string{"empathy", "motivation"},
	})
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyOnboardingScore, string(raw)))

	assert.Equal(t, "empathy", FocusFacet(s))
}

func TestFocusFacetDerivesFromScores(t *testing.T) {
	s := store.NewMemStore()
	raw, err := json.Marshal(api.BaselineResult{
		Scores: api.BaselineScores{
			SelfAwareness:  0.9,
			SelfRegulation: 0.2,
			Motivation:     0.7,
			Empathy:        0.8,
			SocialSkills:   0.6,
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyOnboardingScore, string(raw)))

	assert.Equal(t, "self_regulation", FocusFacet(s))
}

func TestFocusFacetWithoutBaseline(t *testing.T) {
	assert.Empty(t, FocusFacet(store.NewMemStore()))
}

func TestFocusFacetBadJSON(t *testing.T) {
	s := store.NewMemStore()
	require.NoError(t, s.Set(store.KeyOnboardingScore, "{not json"))
	assert.Empty(t, FocusFacet(s))
}
