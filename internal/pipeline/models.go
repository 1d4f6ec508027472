package pipeline

import "github.com/solacehealth/solace/internal/safety"

// State is the per-request pipeline state. Each request moves
// Received → Classified → {Gated | Generating} → {Done | Synthesizing → Done},
// or to Failed on any stage error.
type State string

const (
	StateReceived     State = "received"
	StateClassified   State = "classified"
	StateGated        State = "gated"
	StateGenerating   State = "generating"
	StateSynthesizing State = "synthesizing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Stage identifies an external-collaborator step for error tagging
type Stage string

const (
	StageTranscription Stage = "transcription"
	StageGeneration    Stage = "generation"
	StageSynthesis     Stage = "synthesis"
)

// CalmingMessage is the fixed, non-personalized reply for high-risk input.
// Gating is a successful, intentional result, not an error path.
const CalmingMessage = "I'm here with you. We can pause for a moment if that feels helpful."

// TextRequest is a text-origin submission
type TextRequest struct {
	SessionID    string
	CallerUserID string
	Message      string
}

// VoiceRequest is a voice-origin submission
type VoiceRequest struct {
	SessionID    string
	CallerUserID string
	Audio        []byte
}

// Result is the request-scoped outcome of a pipeline run. Exactly one of
// Text or Audio carries the payload depending on the request origin.
type Result struct {
	State      State
	Assessment safety.Assessment
	Gated      bool
	Text       string
	Audio      []byte
}
