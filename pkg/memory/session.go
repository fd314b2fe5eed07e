package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpaludo/datasage/pkg/analyzer"
)

// Config configures one session's memory engine.
type Config struct {
	// MaxInteractions bounds the rolling history. Zero means the default
	// capacity of 100.
	MaxInteractions int
	// ArchivePath enables the SQLite transcript archive when non-empty.
	ArchivePath string
}

// Session owns the rolling history and the long-lived aggregates for one
// analytical conversation. It is not safe for concurrent use: the caller
// processes one question at a time or gives each goroutine its own session.
type Session struct {
	key      string
	history  *History
	insights *InsightAggregator
	patterns *PatternTracker
	archive  Archive

	closeOnce sync.Once
	closeErr  error
}

func NewSession(cfg Config) (*Session, error) {
	s := &Session{
		key:      "local:" + uuid.NewString(),
		history:  NewHistory(cfg.MaxInteractions),
		insights: NewInsightAggregator(),
		patterns: NewPatternTracker(),
	}

	if cfg.ArchivePath != "" {
		store, err := NewArchiveStore(cfg.ArchivePath)
		if err != nil {
			return nil, err
		}
		s.archive = store
	}

	return s, nil
}

func (s *Session) Key() string { return s.key }

func (s *Session) Len() int { return s.history.Len() }

// AddAnalysis ingests one completed exchange: it runs the extractors over
// the raw analysis text, appends the resulting entry to the history and
// feeds the aggregates. The bundle's own insight/recommendation fields are
// deliberately ignored; extraction from the text keeps this layer decoupled
// from the collaborator's output schema.
func (s *Session) AddAnalysis(ctx context.Context, question string, result analyzer.Result, analysisType string) Entry {
	if analysisType == "" {
		analysisType = TypeGeneral
	}

	entry := Entry{
		Timestamp:       time.Now().Format(time.RFC3339),
		Question:        question,
		AnalysisType:    analysisType,
		KeyFindings:     ExtractFindings(result.Analysis),
		Visualizations:  plotNames(result.Plots),
		DataPatterns:    ExtractPatterns(result.Analysis),
		Recommendations: ExtractRecommendations(result.Analysis),
	}

	s.history.Append(entry)
	s.insights.Update(entry)
	s.patterns.Update(entry)

	if s.archive != nil {
		_ = s.archive.AppendAnalysis(ctx, s.key, entry)
		_ = s.archive.AddMetric(ctx, "memory.analysis.recorded", 1, map[string]string{
			"analysis_type": analysisType,
		})
	}

	return entry
}

// ContextualMemory returns up to n past entries relevant to the question,
// most relevant first.
func (s *Session) ContextualMemory(question string, n int) []Entry {
	return RankEntries(question, s.history.Entries(), n)
}

// Entries exposes the current rolling history, oldest first.
func (s *Session) Entries() []Entry { return s.history.Entries() }

// Insights exposes the per-type aggregates.
func (s *Session) Insights() *InsightAggregator { return s.insights }

// Patterns exposes the global pattern tracker.
func (s *Session) Patterns() *PatternTracker { return s.patterns }

// Clear resets history, aggregates and pattern tracking in one step.
// Archived transcript rows are kept; the archive is a record, not state.
func (s *Session) Clear(ctx context.Context) {
	s.history.Clear()
	s.insights.Clear()
	s.patterns.Clear()

	if s.archive != nil {
		_ = s.archive.AddMetric(ctx, "memory.session.cleared", 1, map[string]string{
			"session_key": s.key,
		})
	}
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.archive != nil {
			s.closeErr = s.archive.Close()
		}
	})
	return s.closeErr
}

// plotNames lists visualization artifact names in a fixed order. The wire
// format carries them as a JSON object, so sorting is the only stable
// choice.
func plotNames(plots map[string]json.RawMessage) []string {
	if len(plots) == 0 {
		return nil
	}
	names := make([]string, 0, len(plots))
	for name := range plots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
