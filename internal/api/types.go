package api

// Types mirroring the backend's JSON surface. Field names follow the
// wire format, which is snake_case throughout.

// SafetyLabel classifies free text for crisis risk.
type SafetyLabel string

const (
	SafetySafe      SafetyLabel = "SAFE"
	SafetyAttention SafetyLabel = "ATTENTION"
	SafetyEscalate  SafetyLabel = "ESCALATE"
)

// HealthStatus is the backend readiness report.
type HealthStatus struct {
	Status         string `json:"status"`
	RetrieverReady bool   `json:"retriever_ready"`
}

// User is the authenticated identity resolved by the backend.
type User struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"` // user, mentor, counselor, coordinator
	TeamID string `json:"team_id,omitempty"`
}

// Emotion is one (label, score) pair from text analysis.
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisResult is the backend-computed emotional analysis of free text.
// Opaque to this app: consumed, never computed locally.
type AnalysisResult struct {
	Emotions     []Emotion          `json:"emotions"`
	Sentiment    float64            `json:"sentiment"`
	FacetSignals map[string]float64 `json:"facet_signals"`
	Topics       []string           `json:"topics"`
}

// SafetyResult is the risk classification of free text.
type SafetyResult struct {
	Label   SafetyLabel `json:"label"`
	Message string      `json:"message,omitempty"`
}

// ExerciseRecommendation is a suggested wellness exercise.
type ExerciseRecommendation struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
	Duration     string   `json:"duration"`
	TargetFacets []string `json:"target_facets"`
	ContextTags  []string `json:"context_tags"`
}

// EntryAnalysis is the combined response of the journal analyze endpoint.
// Analysis and Recommendation are nil when safety escalated.
type EntryAnalysis struct {
	Safety         SafetyResult            `json:"safety"`
	Analysis       *AnalysisResult         `json:"analysis,omitempty"`
	Recommendation *ExerciseRecommendation `json:"recommendation,omitempty"`
	Message        string                  `json:"message,omitempty"`
}

// CheckinQuestion is one backend-served daily Likert prompt.
type CheckinQuestion struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Scale string `json:"scale"`
}

// CheckinResult is the backend's scoring of a submitted check-in.
type CheckinResult struct {
	UserID    string             `json:"user_id"`
	Date      string             `json:"date"`
	Answers   map[string]float64 `json:"answers"`
	MoodIndex float64            `json:"mood_index"`
	EMA7      float64            `json:"ema7"`
	EMA14     float64            `json:"ema14"`
	Flag      SafetyLabel        `json:"flag"`
}

// MoodSample is one historical point in the backend mood series.
type MoodSample struct {
	Date      string      `json:"date"` // YYYY-MM-DD
	MoodIndex float64     `json:"mood_index"`
	EMA7      float64     `json:"ema7"`
	EMA14     float64     `json:"ema14"`
	Flag      SafetyLabel `json:"flag"`
}

// BaselineQuestion is one onboarding assessment prompt.
type BaselineQuestion struct {
	QID   string `json:"qid"`
	Facet string `json:"facet"`
	Text  string `json:"text"`
}

// BaselineAnswer is a 1-5 Likert answer to a baseline question.
type BaselineAnswer struct {
	QID   string  `json:"qid"`
	Value float64 `json:"value"`
}

// BaselineScores holds the five EQ facet scores, each 0-1.
type BaselineScores struct {
	SelfAwareness  float64 `json:"self_awareness"`
	SelfRegulation float64 `json:"self_regulation"`
	Motivation     float64 `json:"motivation"`
	Empathy        float64 `json:"empathy"`
	SocialSkills   float64 `json:"social_skills"`
}

// BaselineResult is the scored onboarding assessment.
type BaselineResult struct {
	Scores    BaselineScores `json:"scores"`
	Strengths []string       `json:"strengths"`
	Focus     []string       `json:"focus"`
	Summary   string         `json:"summary"`
}

// CoachState carries the conversation state for the coaching endpoints.
type CoachState struct {
	Facet            string    `json:"facet"`
	Emotions         []Emotion `json:"emotions,omitempty"`
	LastEntrySummary string    `json:"lastEntrySummary,omitempty"`
}

// CoachTurn is one coaching response.
type CoachTurn struct {
	Question    string `json:"question"`
	InsightLine string `json:"insight_line,omitempty"`
}

// Challenge is a team wellness challenge.
type Challenge struct {
	ID           string   `json:"_id"`
	TeamID       string   `json:"team_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DailyTasks   []string `json:"daily_tasks"`
	TargetFacets []string `json:"target_facets"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	CreatedBy    string   `json:"created_by"`
	CreatedAt    string   `json:"created_at"`
}

// CreateChallengeRequest describes a challenge to create.
type CreateChallengeRequest struct {
	TeamID        string         `json:"team_id,omitempty"`
	TargetFacets  []string       `json:"target_facets"`
	TeamContext   string         `json:"team_context,omitempty"`
	StartDate     string         `json:"start_date,omitempty"`
	EndDate       string         `json:"end_date,omitempty"`
	UseTemplate   bool           `json:"use_template,omitempty"`
	ChallengeData map[string]any `json:"challenge_data,omitempty"`
}

// MentorMatch is one proposed mentor pairing.
type MentorMatch struct {
	MentorID string  `json:"mentor_id"`
	Name     string  `json:"name,omitempty"`
	Score    float64 `json:"score"`
}

// Rewrite is a collaboration-tool message rewrite.
type Rewrite struct {
	Rewritten string `json:"rewritten"`
	Notes     string `json:"notes,omitempty"`
}

// CrisisResource is one support contact.
type CrisisResource struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Text         string `json:"text,omitempty"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// CrisisCategory groups resources under a titled section.
type CrisisCategory struct {
	Title     string           `json:"title"`
	Resources []CrisisResource `json:"resources"`
}

// RagStatus reports document-retrieval readiness.
type RagStatus struct {
	RetrieverReady bool   `json:"retriever_ready"`
	VectorstoreDir string `json:"vectorstore_dir"`
}
