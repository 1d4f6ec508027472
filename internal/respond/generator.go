package respond

import (
	"context"

	"github.com/solacehealth/solace/internal/safety"
)

// Generator produces a reply for a user's message. The risk tier is carried
// as context for future policy use; current implementations do not alter
// generation based on it.
type Generator interface {
	Generate(ctx context.Context, text string, tier safety.RiskTier) (string, error)
}

// TemplateGenerator picks from a fixed set of calm, non-judgmental replies.
// Stands in for a real LLM backend behind the same interface.
type TemplateGenerator struct {
	templates []string
}

// NewTemplateGenerator creates a generator with the default reply templates
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		templates: []string{
			"I might be wrong, but it sounds like something's been on your mind.",
			"We can pause for a moment if that feels helpful.",
			"That makes sense to me.",
			"I'm here with you.",
			"Take your time.",
			"I hear you.",
			"That sounds like it matters to you.",
			"I'm listening.",
			"Thank you for sharing that.",
			"I understand.",
		},
	}
}

// Generate selects a reply deterministically from the input length
func (g *TemplateGenerator) Generate(ctx context.Context, text string, tier safety.RiskTier) (string, error) {
	return g.templates[len(text)%len(g.templates)], nil
}
