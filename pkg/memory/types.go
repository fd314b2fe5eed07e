package memory

// Recognized analysis type tags. The vocabulary is open in practice (any
// string is accepted as a tag), but these are the tags keyword routing and
// relevance scoring know about.
const (
	TypeCorrelation  = "correlation"
	TypeOutlier      = "outlier"
	TypeDistribution = "distribution"
	TypeClustering   = "clustering"
	TypeTemporal     = "temporal"
	TypeSummary      = "summary"
	TypeConclusions  = "conclusions"
	TypeGeneral      = "general"
)

// expectedTypes is the universe of analyses a thorough session covers,
// used when suggesting next steps.
var expectedTypes = []string{
	TypeCorrelation,
	TypeOutlier,
	TypeDistribution,
	TypeClustering,
	TypeTemporal,
	TypeSummary,
}

// Entry summarizes one question/answer exchange. Entries are immutable once
// appended to the history; only the containers and aggregates change.
type Entry struct {
	Timestamp       string         `json:"timestamp"`
	Question        string         `json:"question"`
	AnalysisType    string         `json:"analysis_type"`
	KeyFindings     []string       `json:"key_findings"`
	Visualizations  []string       `json:"visualizations"`
	DataPatterns    map[string]any `json:"data_patterns"`
	Recommendations []string       `json:"recommendations"`
}

// TypeInsight is the running aggregate for one analysis type. It is never
// evicted: counts and patterns persist even after the entries that produced
// them rotate out of the bounded history.
type TypeInsight struct {
	Count        int
	Patterns     map[string]any
	LastAnalysis string
	KeyFindings  []string
}

// PatternStat tracks one detected pattern across the whole session.
// Analyses keeps one element per occurrence; rendering deduplicates.
type PatternStat struct {
	Count    int
	Analyses []string
}
