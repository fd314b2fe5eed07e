package memory

import "sort"

// findingsPerUpdate caps how many of an entry's findings feed the per-type
// accumulator on each update. The accumulator itself is unbounded for the
// life of the session.
const findingsPerUpdate = 3

// InsightAggregator keeps per-analysis-type running statistics. Buckets are
// created lazily and never evicted, so aggregate counts outlive the raw
// entries the rolling history discards.
type InsightAggregator struct {
	buckets map[string]*TypeInsight
	order   []string
}

func NewInsightAggregator() *InsightAggregator {
	return &InsightAggregator{buckets: map[string]*TypeInsight{}}
}

func (a *InsightAggregator) Update(e Entry) {
	bucket, ok := a.buckets[e.AnalysisType]
	if !ok {
		bucket = &TypeInsight{Patterns: map[string]any{}}
		a.buckets[e.AnalysisType] = bucket
		a.order = append(a.order, e.AnalysisType)
	}

	bucket.Count++
	bucket.LastAnalysis = e.Timestamp

	findings := e.KeyFindings
	if len(findings) > findingsPerUpdate {
		findings = findings[:findingsPerUpdate]
	}
	bucket.KeyFindings = append(bucket.KeyFindings, findings...)

	for pattern, value := range e.DataPatterns {
		bucket.Patterns[pattern] = value
	}
}

// Types returns the analysis types in first-encountered order.
func (a *InsightAggregator) Types() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func (a *InsightAggregator) Bucket(analysisType string) (*TypeInsight, bool) {
	bucket, ok := a.buckets[analysisType]
	return bucket, ok
}

func (a *InsightAggregator) Clear() {
	a.buckets = map[string]*TypeInsight{}
	a.order = nil
}

// PatternTracker counts pattern occurrences across all analysis types.
// Only key presence matters; the pattern's value is ignored.
type PatternTracker struct {
	stats map[string]*PatternStat
	order []string
}

func NewPatternTracker() *PatternTracker {
	return &PatternTracker{stats: map[string]*PatternStat{}}
}

func (t *PatternTracker) Update(e Entry) {
	for _, pattern := range sortedKeys(e.DataPatterns) {
		stat, ok := t.stats[pattern]
		if !ok {
			stat = &PatternStat{}
			t.stats[pattern] = stat
			t.order = append(t.order, pattern)
		}
		stat.Count++
		stat.Analyses = append(stat.Analyses, e.AnalysisType)
	}
}

// Patterns returns tracked pattern names in first-encountered order.
func (t *PatternTracker) Patterns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *PatternTracker) Stat(pattern string) (*PatternStat, bool) {
	stat, ok := t.stats[pattern]
	return stat, ok
}

func (t *PatternTracker) Has(pattern string) bool {
	_, ok := t.stats[pattern]
	return ok
}

func (t *PatternTracker) Len() int { return len(t.stats) }

func (t *PatternTracker) Clear() {
	t.stats = map[string]*PatternStat{}
	t.order = nil
}

// sortedKeys fixes an iteration order for pattern maps so that first-seen
// ordering stays deterministic when one entry introduces several patterns.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
