package safety

import "strings"

// Classifier analyzes a message for risk indicators. Implementations must be
// stateless and deterministic so the orchestrator can call them from any
// request goroutine.
type Classifier interface {
	Analyze(text string) Assessment
}

// KeywordClassifier matches case-insensitive substrings against three keyword
// tiers. Tiers are evaluated in strict priority order: any high match wins
// regardless of position, then medium, then low. A message containing both a
// low and a high marker is always classified high.
type KeywordClassifier struct {
	highRiskKeywords   []string
	mediumRiskKeywords []string
	lowRiskKeywords    []string
}

// NewKeywordClassifier creates a classifier with the default keyword tiers
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		highRiskKeywords:   []string{"suicide", "kill myself", "end it all"},
		mediumRiskKeywords: []string{"hopeless", "worthless", "can't go on"},
		lowRiskKeywords:    []string{"stressed", "anxious", "overwhelmed"},
	}
}

// Analyze classifies text into a risk tier with a human-readable reason
func (c *KeywordClassifier) Analyze(text string) Assessment {
	lower := strings.ToLower(text)

	for _, keyword := range c.highRiskKeywords {
		if strings.Contains(lower, keyword) {
			return Assessment{Tier: TierHigh, Reason: "High risk content detected"}
		}
	}

	for _, keyword := range c.mediumRiskKeywords {
		if strings.Contains(lower, keyword) {
			return Assessment{Tier: TierMedium, Reason: "Medium risk content detected"}
		}
	}

	for _, keyword := range c.lowRiskKeywords {
		if strings.Contains(lower, keyword) {
			return Assessment{Tier: TierLow, Reason: "Low risk content detected"}
		}
	}

	return Assessment{Tier: TierNone, Reason: "No risk indicators found"}
}
