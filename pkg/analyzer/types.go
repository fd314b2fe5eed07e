package analyzer

import (
	"context"
	"encoding/json"
)

// Result is the bundle produced by the analysis service for one question.
// Plots are opaque visualization artifacts keyed by name; the memory layer
// only records the names.
type Result struct {
	Analysis        string                     `json:"analysis"`
	Plots           map[string]json.RawMessage `json:"plots,omitempty"`
	Insights        []string                   `json:"insights,omitempty"`
	Recommendations []string                   `json:"recommendations,omitempty"`
}

// Options are the tuning knobs forwarded with each request.
type Options struct {
	CorrelationThreshold float64 `json:"correlation_threshold,omitempty"`
	MaxClusters          int     `json:"max_clusters,omitempty"`
	OutlierContamination float64 `json:"outlier_contamination,omitempty"`
}

// Analyzer executes one analysis directive against the loaded dataset.
// Implementations may perform long-running computation; callers should pass
// a context they are willing to block on.
type Analyzer interface {
	Analyze(ctx context.Context, question, analysisType string) (Result, error)
}
