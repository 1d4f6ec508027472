package health

// Signal classifies one heart-rate sample relative to the user's baseline
type Signal string

const (
	SignalBaselineSet Signal = "baseline_set"
	SignalNormal      Signal = "normal"
	SignalElevated    Signal = "elevated"
	SignalLow         Signal = "low"
)

// HeartRateSample is one reading from a wearable or manual entry
type HeartRateSample struct {
	BPM       float64 `json:"bpm"`
	Timestamp int64   `json:"timestamp"`
}

// IngestRequest represents a health payload submission
type IngestRequest struct {
	HeartRate *HeartRateSample `json:"heartRate,omitempty"`
	Source    string           `json:"source"` // watch | phone | manual
}
