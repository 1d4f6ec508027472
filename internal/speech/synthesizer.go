package speech

import "context"

const (
	synthSampleRate    = 16000
	synthBitsPerSample = 16
	synthChannels      = 1
)

// Synthesizer converts text to WAV-compatible audio bytes. Asynchronous and
// may fail; the pipeline owns timeouts on calls to it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// MockSynthesizer emits one second of silence as a valid WAV file in place of
// a real TTS backend.
type MockSynthesizer struct{}

// NewMockSynthesizer creates a new mock synthesizer
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize returns a silent WAV payload
func (s *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	dataSize := synthSampleRate * synthChannels * (synthBitsPerSample / 8) // 1 second
	pcm := make([]byte, dataSize)
	return PCMToWAV(pcm, synthSampleRate, synthBitsPerSample, synthChannels), nil
}
