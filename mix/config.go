package mix

import (
	"github.com/aminorkey/segue/analysis"
	"github.com/aminorkey/segue/render"
	"github.com/aminorkey/segue/structure"
	"github.com/aminorkey/segue/tempo"
	"github.com/aminorkey/segue/tonal"
	"github.com/aminorkey/segue/transition"
)

// Config gathers every tunable of the pipeline in one place. Each field
// has a Default* constructor in its own package; DefaultConfig composes
// them all.
type Config struct {
	Tempo      tempo.Limits              `json:"tempo"`
	Search     transition.SearchParams   `json:"search"`
	Thresholds transition.Thresholds     `json:"thresholds"`
	Estimator  tonal.EstimatorParams     `json:"estimator"`
	Extractor  structure.ExtractorParams `json:"extractor"`
	Analysis   analysis.Params           `json:"analysis"`
	Slam       render.SlamParams         `json:"slam"`
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() *Config {
	return &Config{
		Tempo:      tempo.DefaultLimits(),
		Search:     transition.DefaultSearchParams(),
		Thresholds: transition.DefaultThresholds(),
		Estimator:  tonal.DefaultEstimatorParams(),
		Extractor:  structure.DefaultExtractorParams(),
		Analysis:   analysis.DefaultParams(),
		Slam:       render.DefaultSlamParams(),
	}
}
