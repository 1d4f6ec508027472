package health

import (
	"sync"

	"go.uber.org/zap"
)

type state struct {
	baselineBPM *float64
	lastSample  *HeartRateSample
}

// Tracker keeps a per-user heart-rate baseline. The first sample for a user
// anchors the baseline and it never updates afterwards; every later sample is
// classified against that frozen value using a fixed deviation band. This is
// deliberate anchoring, not a rolling average.
type Tracker struct {
	mu      sync.Mutex
	states  map[string]*state
	bandBPM float64
	logger  *zap.Logger
}

// NewTracker creates a tracker with the given deviation band in bpm
func NewTracker(bandBPM float64, logger *zap.Logger) *Tracker {
	return &Tracker{
		states:  make(map[string]*state),
		bandBPM: bandBPM,
		logger:  logger,
	}
}

// Ingest records a sample for the user and returns the resulting signal.
// A nil sample is a no-op classification and leaves state untouched.
func (t *Tracker) Ingest(userID string, sample *HeartRateSample) Signal {
	if sample == nil {
		return SignalNormal
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[userID]
	if !ok {
		st = &state{}
		t.states[userID] = st
	}

	st.lastSample = sample

	if st.baselineBPM == nil {
		baseline := sample.BPM
		st.baselineBPM = &baseline
		t.logger.Info("Health baseline set",
			zap.String("user_id", userID),
			zap.Float64("bpm", baseline))
		return SignalBaselineSet
	}

	baseline := *st.baselineBPM
	switch {
	case sample.BPM > baseline+t.bandBPM:
		return SignalElevated
	case sample.BPM < baseline-t.bandBPM:
		return SignalLow
	default:
		return SignalNormal
	}
}

// Baseline returns the frozen baseline for a user, if one has been set
func (t *Tracker) Baseline(userID string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[userID]
	if !ok || st.baselineBPM == nil {
		return 0, false
	}
	return *st.baselineBPM, true
}
