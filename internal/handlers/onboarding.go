package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/cache"
	"github.com/MathiasEthan/RaAI/internal/mood"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

const baselineQuestionsCacheKey = "baseline:questions"

type OnboardingHandler struct {
	log    *zap.Logger
	store  store.Store
	client *api.Client
	cache  *cache.Cache
	health *services.HealthMonitor
}

func NewOnboardingHandler(log *zap.Logger, s store.Store, client *api.Client, c *cache.Cache, health *services.HealthMonitor) *OnboardingHandler {
	return &OnboardingHandler{log: log, store: s, client: client, cache: c, health: health}
}

func (h *OnboardingHandler) Show(c *gin.Context) {
	questions, err := h.questions(c)
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Loading assessment")
		return
	}
	renderPage(c, "Baseline Assessment", h.client.Token() != "", h.health.Ready(), views.Onboarding(questions, csrfToken(c)))
}

func (h *OnboardingHandler) Submit(c *gin.Context) {
	questions, err := h.questions(c)
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Scoring assessment")
		return
	}

	answers := make([]api.BaselineAnswer, 0, len(questions))
	for _, q := range questions {
		raw := c.PostForm("q_" + q.QID)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 1 || value > 5 {
			continue
		}
		answers = append(answers, api.BaselineAnswer{QID: q.QID, Value: value})
	}
	if len(answers) == 0 {
		c.Header("HX-Retarget", "#toast-area")
		views.Toast("Please answer at least one question.").Render(c.Request.Context(), c.Writer)
		return
	}

	result, err := h.client.ScoreBaseline(c.Request.Context(), answers)
	if err != nil {
		handleAPIError(c, h.log, h.client, err, "Scoring assessment")
		return
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := h.store.Set(store.KeyOnboardingScore, string(raw)); err != nil {
			h.log.Error("Failed to persist baseline result", zap.Error(err))
		}
	}

	exercise := h.recommendExercise(c, result)
	renderPage(c, "Your Baseline", h.client.Token() != "", h.health.Ready(), views.OnboardingResult(result, exercise))
}

// questions fetches the baseline questionnaire, serving from cache when
// a previous fetch is still fresh.
func (h *OnboardingHandler) questions(c *gin.Context) ([]api.BaselineQuestion, error) {
	var questions []api.BaselineQuestion
	if h.cache.GetJSON(c.Request.Context(), baselineQuestionsCacheKey, &questions) && len(questions) > 0 {
		return questions, nil
	}
	questions, err := h.client.BaselineQuestions(c.Request.Context())
	if err != nil {
		return nil, err
	}
	h.cache.SetJSON(c.Request.Context(), baselineQuestionsCacheKey, questions, time.Hour)
	return questions, nil
}

// recommendExercise asks for an exercise targeting the two weakest
// facets. Best effort, the result page works without one.
func (h *OnboardingHandler) recommendExercise(c *gin.Context, result *api.BaselineResult) *api.ExerciseRecommendation {
	facets := result.Focus
	if len(facets) == 0 {
		facets = mood.TargetFacets(map[string]float64{
			"self_awareness":  result.Scores.SelfAwareness,
			"self_regulation": result.Scores.SelfRegulation,
			"motivation":      result.Scores.Motivation,
			"empathy":         result.Scores.Empathy,
			"social_skills":   result.Scores.SocialSkills,
		})
	}
	if len(facets) == 0 {
		return nil
	}
	exercise, err := h.client.Exercise(c.Request.Context(), facets, []string{"onboarding"}, "short")
	if err != nil {
		h.log.Warn("Exercise recommendation failed", zap.Error(err))
		return nil
	}
	return exercise
}

// FocusFacet returns the stored weakest facet, used to steer coaching.
func FocusFacet(s store.Store) string {
	raw, ok := s.Get(store.KeyOnboardingScore)
	if !ok {
		return ""
	}
	var result api.BaselineResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return ""
	}
	if len(result.Focus) > 0 {
		return result.Focus[0]
	}
	facets := mood.TargetFacets(map[string]float64{
		"self_awareness":  result.Scores.SelfAwareness,
		"self_regulation": result.Scores.SelfRegulation,
		"motivation":      result.Scores.Motivation,
		"empathy":         result.Scores.Empathy,
		"social_skills":   result.Scores.SocialSkills,
	})
	if len(facets) == 0 {
		return ""
	}
	return facets[0]
}
