// Package analysis implements transcript processing for tutoring sessions.
//
// It turns a raw transcript into structured signals: topics discussed,
// misconceptions, strengths, engagement, per-topic mastery update inputs,
// and mental-block signals. The only implementation is the rule-based
// processor (keyword and pattern matching); the Processor interface exists
// so a model-backed processor can be swapped in later without touching the
// ingestion flow.
package analysis

// GoalDraft is an extracted learning goal, not yet persisted.
type GoalDraft struct {
	Description       string
	MeasurableOutcome string
	Deadline          *string // ISO date or nil
}

// TopicDraft is a detected topic with its optional parent topic name.
type TopicDraft struct {
	Name   string
	Parent string // empty for root topics
}

// TrialResult is the output of processing a trial/intake transcript.
type TrialResult struct {
	Goals   []GoalDraft
	Topics  []TopicDraft
	Summary string

	// CurriculumRecommendation is the inferred curriculum track; the
	// ingestion flow writes it onto the student record when non-empty.
	CurriculumRecommendation string
}

// MasteryUpdate carries the per-topic signals that feed the mastery and
// confidence update formulas.
type MasteryUpdate struct {
	Topic             string
	Improvement       float64 // normalized improvement signal, 0.0-1.0
	Errors            int
	IndependentSolves int
}

// SignalType classifies a mental-block signal.
type SignalType string

const (
	SignalAvoidance  SignalType = "avoidance"
	SignalHesitation SignalType = "hesitation"
	SignalEmotional  SignalType = "emotional"
)

// BlockSignal is a single mental-block indicator found in a transcript.
type BlockSignal struct {
	Description string
	Type        SignalType
	Severity    float64 // initial severity for a newly created block
}

// SessionResult is the output of processing a regular session transcript.
type SessionResult struct {
	TopicsDiscussed []string
	Misconceptions  []string
	Strengths       []string
	EngagementScore float64
	MasteryUpdates  []MasteryUpdate
	BlockSignals    []BlockSignal
	ParentSummary   string
	TutorInsight    string
	RecommendedNext string
}

// Processor is the transcript processing interface.
//
// Implementations must be safe for concurrent use; the ingestion service
// shares one across requests.
type Processor interface {
	ProcessTrial(transcript string) (*TrialResult, error)
	ProcessSession(transcript string) (*SessionResult, error)
}
