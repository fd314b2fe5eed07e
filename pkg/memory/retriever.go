package memory

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const defaultContextEntries = 3

// typeKeywordFamilies drive both relevance scoring and question routing.
// Order matters: the first family a question matches wins.
type typeKeywordFamily struct {
	analysisType string
	keywords     []string
}

var typeKeywordFamilies = []typeKeywordFamily{
	{TypeCorrelation, []string{"correlação", "relação", "correlation", "relaciona"}},
	{TypeOutlier, []string{"outlier", "anomalia", "atípico"}},
	{TypeDistribution, []string{"distribuição", "histograma", "distribution"}},
	{TypeClustering, []string{"cluster", "agrupamento", "grupo"}},
	{TypeTemporal, []string{"tempo", "temporal", "time", "trend"}},
	{TypeConclusions, []string{"conclus", "aprend", "insights"}},
}

const (
	lexicalOverlapScore = 2
	typeMatchScore      = 3
)

// RankEntries scores each historical entry against the question and returns
// the n most relevant, most relevant first. Entries scoring zero are
// excluded; among equal scores more recent entries rank first. A
// non-positive n falls back to 3.
func RankEntries(question string, entries []Entry, n int) []Entry {
	if n <= 0 {
		n = defaultContextEntries
	}
	if len(entries) == 0 {
		return nil
	}

	questionLower := strings.ToLower(question)
	tokens := overlapTokens(questionLower)

	type scoredEntry struct {
		entry Entry
		score int
	}
	scored := make([]scoredEntry, 0, len(entries))

	// Walk newest-first so the stable sort breaks score ties by recency.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		score := 0

		entryQuestion := strings.ToLower(entry.Question)
		for _, token := range tokens {
			if strings.Contains(entryQuestion, token) {
				score += lexicalOverlapScore
				break
			}
		}

		for _, family := range typeKeywordFamilies {
			if entry.AnalysisType == family.analysisType && containsAny(questionLower, family.keywords) {
				score += typeMatchScore
				break
			}
		}

		if score > 0 {
			scored = append(scored, scoredEntry{entry: entry, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	out := make([]Entry, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.entry)
	}
	return out
}

// overlapTokens returns the question tokens long enough to count as lexical
// signal. Substring containment is intentional: "outlier" should match a
// past question mentioning "outliers".
func overlapTokens(questionLower string) []string {
	var tokens []string
	for _, token := range strings.Fields(questionLower) {
		if utf8.RuneCountInString(token) > 3 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// routingKeywords classify a question into an analysis type tag. Checked in
// order; conclusions requests take precedence over everything else.
var routingKeywords = []typeKeywordFamily{
	{TypeConclusions, []string{"conclus", "aprend", "resumo geral", "insights gerais"}},
	{TypeCorrelation, []string{"correlação", "relação", "correlation", "relaciona"}},
	{TypeOutlier, []string{"outlier", "anomalia", "atípico", "anomal"}},
	{TypeClustering, []string{"cluster", "agrupamento", "grupo", "segmenta"}},
	{TypeTemporal, []string{"tempo", "temporal", "tendência", "time", "trend"}},
	{TypeDistribution, []string{"distribuição", "histograma", "distribution", "histogram"}},
	{TypeSummary, []string{"tipo", "types", "describe", "resumo", "summary"}},
}

// DetectAnalysisType assigns the analysis type tag for a question.
func DetectAnalysisType(question string) string {
	questionLower := strings.ToLower(question)
	for _, family := range routingKeywords {
		if containsAny(questionLower, family.keywords) {
			return family.analysisType
		}
	}
	return TypeGeneral
}

// FormatContext renders relevant past entries as a context block to prepend
// to an outgoing question. Empty input produces an empty string.
func FormatContext(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nContexto de análises anteriores:\n")
	for _, entry := range entries {
		findings := entry.KeyFindings
		if len(findings) > 2 {
			findings = findings[:2]
		}
		b.WriteString("- " + entry.Question + ": " + strings.Join(findings, ", ") + "\n")
	}
	return b.String()
}
