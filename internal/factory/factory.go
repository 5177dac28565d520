package factory

import (
	"go-translation-studio/internal/prompt"
	"go-translation-studio/pkg/models"
)

// BuilderFactory creates prompt builders per quality tier.
type BuilderFactory interface {
	CreateBuilder(tier models.QualityTier) prompt.Builder
}

// builderFactory implements BuilderFactory
type builderFactory struct{}

// NewBuilderFactory creates a new builder factory
func NewBuilderFactory() BuilderFactory {
	return &builderFactory{}
}

// CreateBuilder creates a builder for the given tier. Unknown tiers get the
// standard builder, matching the default quality of the translate endpoint.
func (f *builderFactory) CreateBuilder(tier models.QualityTier) prompt.Builder {
	switch tier {
	case models.TierFast:
		return prompt.NewFastBuilder()
	case models.TierPremium:
		return prompt.NewPremiumBuilder()
	default:
		return prompt.NewStandardBuilder()
	}
}
