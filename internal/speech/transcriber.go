package speech

import "context"

// Transcriber converts audio bytes to text. Asynchronous and may fail; the
// pipeline owns timeouts on calls to it.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// MockTranscriber returns canned text in place of a real STT backend
// (e.g. Whisper). It keeps the pipeline exercisable end to end.
type MockTranscriber struct{}

// NewMockTranscriber creates a new mock transcriber
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns placeholder text
func (t *MockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "I am feeling a little tired today", nil
}
