package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sample(bpm float64) *HeartRateSample {
	return &HeartRateSample{BPM: bpm, Timestamp: time.Now().Unix()}
}

func TestFirstSampleSetsBaseline(t *testing.T) {
	tracker := NewTracker(15, zap.NewNop())

	signal := tracker.Ingest("user-1", sample(70))
	assert.Equal(t, SignalBaselineSet, signal)

	baseline, ok := tracker.Baseline("user-1")
	require.True(t, ok)
	assert.Equal(t, 70.0, baseline)
}

func TestClassificationAgainstFrozenBaseline(t *testing.T) {
	tracker := NewTracker(15, zap.NewNop())

	require.Equal(t, SignalBaselineSet, tracker.Ingest("user-1", sample(70)))

	assert.Equal(t, SignalElevated, tracker.Ingest("user-1", sample(90)))
	assert.Equal(t, SignalLow, tracker.Ingest("user-1", sample(50)))
	assert.Equal(t, SignalNormal, tracker.Ingest("user-1", sample(75)))

	// Band edges are inclusive of normal
	assert.Equal(t, SignalNormal, tracker.Ingest("user-1", sample(85)))
	assert.Equal(t, SignalNormal, tracker.Ingest("user-1", sample(55)))
}

func TestBaselineNeverUpdates(t *testing.T) {
	tracker := NewTracker(15, zap.NewNop())

	tracker.Ingest("user-1", sample(70))
	tracker.Ingest("user-1", sample(95))
	tracker.Ingest("user-1", sample(95))

	baseline, ok := tracker.Baseline("user-1")
	require.True(t, ok)
	assert.Equal(t, 70.0, baseline)

	// Still classified against the original anchor
	assert.Equal(t, SignalElevated, tracker.Ingest("user-1", sample(90)))
}

func TestNilSampleIsNoOp(t *testing.T) {
	tracker := NewTracker(15, zap.NewNop())

	assert.Equal(t, SignalNormal, tracker.Ingest("user-1", nil))

	_, ok := tracker.Baseline("user-1")
	assert.False(t, ok, "nil sample must not touch state")

	// The next real sample is still the baseline
	assert.Equal(t, SignalBaselineSet, tracker.Ingest("user-1", sample(68)))
}

func TestBaselinesAreIndependentPerUser(t *testing.T) {
	tracker := NewTracker(15, zap.NewNop())

	tracker.Ingest("user-a", sample(60))
	tracker.Ingest("user-b", sample(90))

	assert.Equal(t, SignalElevated, tracker.Ingest("user-a", sample(80)))
	assert.Equal(t, SignalNormal, tracker.Ingest("user-b", sample(80)))
}
