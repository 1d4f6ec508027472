package safety

// RiskTier is a coarse classification of how safety-sensitive a message is
type RiskTier string

const (
	TierNone   RiskTier = "none"
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Assessment is the result of analyzing one message. It is derived fresh per
// input and never persisted.
type Assessment struct {
	Tier   RiskTier `json:"tier"`
	Reason string   `json:"reason"`
}
