// Package api is the single point of contact with the Ra.AI backend.
// It owns the bearer token lifecycle and translates every failure into a
// structured *Error; it performs no presentation side effects.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MathiasEthan/RaAI/internal/store"
)

// Client talks to the backend. Construct it explicitly and pass it to
// whatever needs it; there is no package-level singleton. Safe for
// concurrent use: the token is read from every request goroutine and the
// health poller while login/logout handlers rewrite it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      store.Store

	mu    sync.RWMutex
	token string
}

// New builds a Client. The token, if one was persisted by a previous
// session, is loaded from the store.
func New(baseURL string, timeout time.Duration, s store.Store) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      s,
	}
	if tok, ok := s.Get(store.KeyAuthToken); ok {
		c.token = tok
	}
	return c
}

// SetToken stores the bearer token in memory and in persistent storage.
// Subsequent requests attach it as an Authorization header.
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return c.store.Set(store.KeyAuthToken, token)
}

// ClearToken removes the token from memory and persistent storage (logout).
func (c *Client) ClearToken() error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return c.store.Delete(store.KeyAuthToken)
}

// Token returns the current bearer token, empty if none is set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// TokenExpired reports whether the stored token is a JWT whose exp claim
// has passed. Opaque (non-JWT) tokens are never considered expired here;
// the backend remains the authority.
func (c *Client) TokenExpired(now time.Time) bool {
	token := c.Token()
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// LoginURL is the backend's redirect-based OAuth entry point.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/login"
}

// do issues one JSON request. in may be nil for body-less requests; out
// may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "encode request body", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: network-level failure.
		return &Error{Kind: KindNetwork, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindValidation, Status: resp.StatusCode, Message: "decode response body", Err: err}
	}
	return nil
}

// newStatusError extracts the server-provided detail message, falling
// back to the HTTP status line.
func newStatusError(resp *http.Response) *Error {
	kind := KindHTTP
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}

	msg := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
		msg = detail.Detail
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}

// --- Health & Status ---

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Authentication ---

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Analytics & mood tracking ---

func (c *Client) CheckinQuestions(ctx context.Context) ([]CheckinQuestion, error) {
	var out struct {
		Questions []CheckinQuestion `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, "/analytics/checkin/questions", nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *Client) SubmitCheckin(ctx context.Context, userID string, answers map[string]float64, date string) (*CheckinResult, error) {
	in := map[string]any{
		"user_id": userID,
		"answers": answers,
		"date":    date,
	}
	var out CheckinResult
	if err := c.do(ctx, http.MethodPost, "/analytics/checkin", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MoodSeries(ctx context.Context, userID string, days int) ([]MoodSample, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("days", strconv.Itoa(days))
	var out struct {
		Series []MoodSample `json:"series"`
	}
	if err := c.do(ctx, http.MethodGet, "/analytics/series?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Series, nil
}

func (c *Client) TeamAnalytics(ctx context.Context, teamID string) (map[string]any, error) {
	q := url.Values{}
	q.Set("team_id", teamID)
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/analytics/team?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Journal analysis ---

func (c *Client) AnalyzeEntry(ctx context.Context, journal, mood, entryContext string) (*EntryAnalysis, error) {
	in := map[string]any{"journal": journal}
	if mood != "" {
		in["mood"] = mood
	}
	if entryContext != "" {
		in["context"] = entryContext
	}
	var out EntryAnalysis
	if err := c.do(ctx, http.MethodPost, "/ai/analyze-entry", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MoodScore(ctx context.Context, text string) (float64, error) {
	var out struct {
		Score float64 `json:"score"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai/mood-score", map[string]string{"text": text}, &out); err != nil {
		return 0, err
	}
	return out.Score, nil
}

func (c *Client) SafetyCheck(ctx context.Context, text string) (*SafetyResult, error) {
	var out SafetyResult
	if err := c.do(ctx, http.MethodPost, "/ai/safety-check", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Baseline assessment ---

func (c *Client) BaselineQuestions(ctx context.Context) ([]BaselineQuestion, error) {
	var out struct {
		Questions []BaselineQuestion `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, "/ai/get-baseline-questions", nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *Client) ScoreBaseline(ctx context.Context, answers []BaselineAnswer) (*BaselineResult, error) {
	in := map[string]any{"answers": answers}
	var out BaselineResult
	if err := c.do(ctx, http.MethodPost, "/ai/score-baseline", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Exercise recommendation ---

func (c *Client) Exercise(ctx context.Context, targetFacets, contextTags []string, durationHint string) (*ExerciseRecommendation, error) {
	if durationHint == "" {
		durationHint = "5min"
	}
	in := map[string]any{
		"target_facets": targetFacets,
		"context_tags":  contextTags,
		"duration_hint": durationHint,
	}
	var out struct {
		Exercise ExerciseRecommendation `json:"exercise"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai/get-exercise", in, &out); err != nil {
		return nil, err
	}
	return &out.Exercise, nil
}

// --- Coaching ---

func (c *Client) CoachQuestion(ctx context.Context, state CoachState) (*CoachTurn, error) {
	in := map[string]any{"state": state, "user_id": "current"}
	var out CoachTurn
	if err := c.do(ctx, http.MethodPost, "/ai/coach-question", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CoachReply(ctx context.Context, state CoachState, message string) (*CoachTurn, error) {
	in := map[string]any{"state": state, "message": message, "user_id": "current"}
	var out CoachTurn
	if err := c.do(ctx, http.MethodPost, "/ai/coach-reply", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Challenges ---

func (c *Client) CreateChallenge(ctx context.Context, req CreateChallengeRequest) (*Challenge, error) {
	var out Challenge
	if err := c.do(ctx, http.MethodPost, "/challenges/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JoinChallenge(ctx context.Context, challengeID string) error {
	return c.do(ctx, http.MethodPost, "/challenges/join", map[string]string{"challenge_id": challengeID}, nil)
}

func (c *Client) CompleteChallengeDay(ctx context.Context, challengeID string) error {
	return c.do(ctx, http.MethodPost, "/challenges/complete", map[string]string{"challenge_id": challengeID}, nil)
}

func (c *Client) ChallengeLeaderboard(ctx context.Context, challengeID string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("challenge_id", challengeID)
	var out struct {
		Leaderboard []map[string]any `json:"leaderboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/challenges/leaderboard?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Leaderboard, nil
}

// --- Mentorship ---

func (c *Client) MentorMatches(ctx context.Context, k int) ([]MentorMatch, error) {
	if k <= 0 {
		k = 5
	}
	var out struct {
		Matches []MentorMatch `json:"matches"`
	}
	if err := c.do(ctx, http.MethodPost, "/mentors/match", map[string]int{"k": k}, &out); err != nil {
		return nil, err
	}
	return out.Matches, nil
}

func (c *Client) AcceptMentorMatch(ctx context.Context, mentorID string) error {
	return c.do(ctx, http.MethodPost, "/mentors/accept", map[string]string{"mentor_id": mentorID}, nil)
}

// --- Collaboration tools ---

func (c *Client) RewriteMessage(ctx context.Context, text, intent string) (*Rewrite, error) {
	if intent == "" {
		intent = "assertive_kind"
	}
	var out Rewrite
	if err := c.do(ctx, http.MethodPost, "/collab/rewrite", map[string]string{"text": text, "intent": intent}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MeetingDebrief(ctx context.Context, notes string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/collab/debrief", map[string]string{"notes": notes}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Crisis support ---

func (c *Client) CrisisResources(ctx context.Context, locale, topic string) (map[string]CrisisCategory, error) {
	if locale == "" {
		locale = "en"
	}
	q := url.Values{}
	q.Set("locale", locale)
	if topic != "" {
		q.Set("topic", topic)
	}
	var out map[string]CrisisCategory
	if err := c.do(ctx, http.MethodGet, "/crisis/resources?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- RAG document management ---

// Upload is one file to ingest.
type Upload struct {
	Name    string
	Content io.Reader
}

// IngestDocuments sends files as a multipart form; this is the one
// endpoint that does not speak JSON on the way in.
func (c *Client) IngestDocuments(ctx context.Context, uploads []Upload) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, up := range uploads {
		part, err := w.CreateFormFile("files", up.Name)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "build multipart form", Err: err}
		}
		if _, err := io.Copy(part, up.Content); err != nil {
			return &Error{Kind: KindValidation, Message: "read upload " + up.Name, Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindValidation, Message: "finalize multipart form", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rag/ingest", &buf)
	if err != nil {
		return &Error{Kind: KindValidation, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) RAGStatus(ctx context.Context) (*RagStatus, error) {
	var out RagStatus
	if err := c.do(ctx, http.MethodGet, "/rag/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
