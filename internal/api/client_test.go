package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MathiasEthan/RaAI/internal/store"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *store.MemStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := store.NewMemStore()
	return New(srv.URL, 5*time.Second, s), s
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotHeader string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok"})
	})

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}

func TestBearerHeaderWithToken(t *testing.T) {
	var got string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok"})
	})

	require.NoError(t, client.SetToken("abc123"))
	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", got)
}

func TestSetTokenPersists(t *testing.T) {
	client, s := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, client.SetToken("tok"))

	stored, ok := s.Get(store.KeyAuthToken)
	require.True(t, ok)
	assert.Equal(t, "tok", stored)

	// A fresh client over the same store picks the token back up.
	again := New("http://example.invalid", time.Second, s)
	assert.Equal(t, "tok", again.Token())
}

func TestClearTokenStopsAttaching(t *testing.T) {
	var got string
	client, s := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok"})
	})

	require.NoError(t, client.SetToken("tok"))
	require.NoError(t, client.ClearToken())

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, ok := s.Get(store.KeyAuthToken)
	assert.False(t, ok)
}

func TestUnauthorizedIsAuthKind(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	})

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuth, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Not authenticated", apiErr.Message)
}

func TestForbiddenIsAuthKind(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Me(context.Background())
	assert.True(t, IsAuth(err))
}

func TestServerErrorIsHTTPKind(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Health(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindHTTP, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "HTTP 500")
}

func TestDetailExtraction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "journal must not be empty"})
	})

	_, err := client.MoodScore(context.Background(), "")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "journal must not be empty", apiErr.Message)
}

func TestUnreachableBackendIsNetworkKind(t *testing.T) {
	client := New("http://127.0.0.1:1", 500*time.Millisecond, store.NewMemStore())
	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestMalformedBodyIsValidationKind(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not json")
	})

	_, err := client.Health(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
}

func TestMoodSeriesUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "u1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		json.NewEncoder(w).Encode(map[string]any{
			"series": []MoodSample{{Date: "2025-03-14", MoodIndex: 6.5}},
		})
	})

	series, err := client.MoodSeries(context.Background(), "u1", 30)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 6.5, series[0].MoodIndex)
}

func TestMentorMatchesUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3, body["k"])
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []MentorMatch{{MentorID: "m1", Score: 0.92}},
		})
	})

	matches, err := client.MentorMatches(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].MentorID)
}

func TestConcurrentTokenRotation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok"})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = client.SetToken("rotating")
			_ = client.ClearToken()
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := client.Health(context.Background())
		require.NoError(t, err)
		client.TokenExpired(time.Now())
	}
	<-done
}

func TestIngestDocumentsMultipart(t *testing.T) {
	var fileNames []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, f := range r.MultipartForm.File["files"] {
			fileNames = append(fileNames, f.Filename)
		}
		w.WriteHeader(http.StatusOK)
	})

	err := client.IngestDocuments(context.Background(), []Upload{
		{Name: "a.pdf", Content: strings.NewReader("aaa")},
		{Name: "b.txt", Content: strings.NewReader("bbb")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.txt"}, fileNames)
}

// buildJWT makes an unsigned-but-parseable token with the given exp.
func buildJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims, err := json.Marshal(map[string]any{"exp": exp.Unix()})
	require.NoError(t, err)
	payload := base64.RawURLEncoding.EncodeToString(claims)
	sig := base64.RawURLEncoding.EncodeToString([]byte("sig"))
	return header + "." + payload + "." + sig
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	client := New("http://example.invalid", time.Second, store.NewMemStore())

	require.NoError(t, client.SetToken(buildJWT(t, now.Add(-time.Hour))))
	assert.True(t, client.TokenExpired(now))

	require.NoError(t, client.SetToken(buildJWT(t, now.Add(time.Hour))))
	assert.False(t, client.TokenExpired(now))
}

func TestTokenExpiredOpaqueToken(t *testing.T) {
	client := New("http://example.invalid", time.Second, store.NewMemStore())
	require.NoError(t, client.SetToken("not-a-jwt"))
	assert.False(t, client.TokenExpired(time.Now()))

	require.NoError(t, client.ClearToken())
	assert.False(t, client.TokenExpired(time.Now()))
}

func TestCheckinQuestionsUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/checkin/questions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []CheckinQuestion{{ID: "sleep", Text: "How did you sleep?", Scale: "1-5"}},
		})
	})

	questions, err := client.CheckinQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "sleep", questions[0].ID)
}

func TestCreateChallengeDecodesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req CreateChallengeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"calm"}, req.TargetFacets)
		json.NewEncoder(w).Encode(Challenge{ID: "ch1", Title: "Calm week", TargetFacets: req.TargetFacets})
	})

	ch, err := client.CreateChallenge(context.Background(), CreateChallengeRequest{TargetFacets: []string{"calm"}})
	require.NoError(t, err)
	assert.Equal(t, "ch1", ch.ID)
	assert.Equal(t, "Calm week", ch.Title)
}

func TestJoinChallengeSendsID(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.JoinChallenge(context.Background(), "ch1"))
	assert.Equal(t, "ch1", body["challenge_id"])
}

func TestCompleteChallengeDaySendsID(t *testing.T) {
	var path string
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.CompleteChallengeDay(context.Background(), "ch2"))
	assert.Equal(t, "/challenges/complete", path)
	assert.Equal(t, "ch2", body["challenge_id"])
}

func TestChallengeLeaderboardUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ch1", r.URL.Query().Get("challenge_id"))
		json.NewEncoder(w).Encode(map[string]any{
			"leaderboard": []map[string]any{{"user_id": "u1", "days_completed": 4.0}},
		})
	})

	board, err := client.ChallengeLeaderboard(context.Background(), "ch1")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "u1", board[0]["user_id"])
}

func TestTeamAnalyticsPassesTeamID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "t7", r.URL.Query().Get("team_id"))
		json.NewEncoder(w).Encode(map[string]any{"avg_mood": 6.2, "members": 12.0})
	})

	stats, err := client.TeamAnalytics(context.Background(), "t7")
	require.NoError(t, err)
	assert.Equal(t, 6.2, stats["avg_mood"])
}

func TestMeetingDebriefDecodesBody(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"summary": "went fine"})
	})

	out, err := client.MeetingDebrief(context.Background(), "standup notes")
	require.NoError(t, err)
	assert.Equal(t, "standup notes", body["notes"])
	assert.Equal(t, "went fine", out["summary"])
}

func TestSafetyCheckDecodesLabel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/safety-check", r.URL.Path)
		json.NewEncoder(w).Encode(SafetyResult{Label: SafetyEscalate, Message: "reach out now"})
	})

	res, err := client.SafetyCheck(context.Background(), "dark thoughts")
	require.NoError(t, err)
	assert.Equal(t, SafetyEscalate, res.Label)
	assert.Equal(t, "reach out now", res.Message)
}

func TestLoginURL(t *testing.T) {
	client := New("http://localhost:8000/", time.Second, store.NewMemStore())
	assert.Equal(t, "http://localhost:8000/auth/login", client.LoginURL())
}
