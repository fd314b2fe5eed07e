package memory

import (
	"fmt"
	"strings"
)

const (
	emptySummaryMessage     = "Nenhuma análise realizada ainda."
	emptyConclusionsMessage = "Nenhuma análise foi realizada ainda. Por favor, faça algumas análises primeiro."

	maxFindingsPerType             = 5
	maxConsolidatedRecommendations = 8
)

// GenerateSummary renders a short digest of the session: total analyses,
// counts per type and the globally tracked patterns. Read-only and
// deterministic given the session state.
func (s *Session) GenerateSummary() string {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return emptySummaryMessage
	}

	var parts []string
	parts = append(parts, "## Resumo das Análises Realizadas\n")
	parts = append(parts, fmt.Sprintf("Total de análises: %d\n", len(entries)))

	parts = append(parts, "\n### Tipos de Análises:")
	for _, tc := range countTypes(entries) {
		parts = append(parts, fmt.Sprintf("- %s: %d análises", tc.analysisType, tc.count))
	}

	if s.patterns.Len() > 0 {
		parts = append(parts, "\n### Padrões Identificados:")
		for _, pattern := range s.patterns.Patterns() {
			stat, _ := s.patterns.Stat(pattern)
			parts = append(parts, fmt.Sprintf("- %s: detectado em %d análises", pattern, stat.Count))
		}
	}

	return strings.Join(parts, "\n")
}

// GenerateConclusions renders the consolidated multi-section report built
// from the aggregator and tracker state plus the current history.
func (s *Session) GenerateConclusions() string {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return emptyConclusionsMessage
	}

	var out []string
	out = append(out, "# Conclusões Consolidadas da Análise Exploratória de Dados\n")
	out = append(out, fmt.Sprintf("*Baseado em %d análises realizadas*\n", len(entries)))

	// 1. Overview of analyses
	out = append(out, "## 1. Resumo das Análises Realizadas")
	typeCounts := countTypes(entries)
	for _, tc := range typeCounts {
		out = append(out, fmt.Sprintf("- **%s**: %d análise(s)", tc.analysisType, tc.count))
	}
	out = append(out, "")

	// 2. Key patterns discovered
	out = append(out, "## 2. Principais Padrões Identificados")
	if s.patterns.Len() > 0 {
		for _, pattern := range s.patterns.Patterns() {
			stat, _ := s.patterns.Stat(pattern)
			name := titleWords(strings.ReplaceAll(pattern, "_", " "))
			out = append(out, fmt.Sprintf("- **%s**: Identificado em %d análise(s)", name, stat.Count))
			out = append(out, fmt.Sprintf("  - Detectado em: %s", strings.Join(uniqueInOrder(stat.Analyses, 0), ", ")))
		}
	} else {
		out = append(out, "- Nenhum padrão global identificado ainda")
	}
	out = append(out, "")

	// 3. Key findings by analysis type
	out = append(out, "## 3. Principais Descobertas por Tipo de Análise")
	for _, analysisType := range s.insights.Types() {
		bucket, ok := s.insights.Bucket(analysisType)
		if !ok || len(bucket.KeyFindings) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("\n### %s:", titleWords(analysisType)))
		for _, finding := range uniqueInOrder(bucket.KeyFindings, maxFindingsPerType) {
			out = append(out, "  "+finding)
		}
	}
	out = append(out, "")

	// 4. Data quality insights
	out = append(out, "## 4. Insights sobre Qualidade dos Dados")
	var qualityIssues []string
	if s.patterns.Has("has_outliers") {
		qualityIssues = append(qualityIssues, "- Outliers detectados: Podem indicar problemas de qualidade ou valores genuinamente extremos")
	}
	if s.patterns.Has("many_outliers") {
		qualityIssues = append(qualityIssues, "- Alta concentração de outliers: Requer investigação aprofundada")
	}
	if s.patterns.Has("asymmetric_distributions") {
		qualityIssues = append(qualityIssues, "- Distribuições assimétricas: Considere transformações para normalização")
	}
	if len(qualityIssues) > 0 {
		out = append(out, qualityIssues...)
	} else {
		out = append(out, "- Dados aparentam boa qualidade geral")
	}
	out = append(out, "")

	// 5. Relationships and correlations
	out = append(out, "## 5. Relacionamentos entre Variáveis")
	if s.patterns.Has("has_correlations") {
		out = append(out, "- Correlações significativas foram identificadas entre variáveis")
		if s.patterns.Has("strong_correlations") {
			out = append(out, "- Algumas correlações são particularmente fortes")
			out = append(out, "- **Recomendação**: Considere análise de multicolinearidade para modelagem")
		}
	} else {
		out = append(out, "- Variáveis aparentam ser relativamente independentes")
	}
	out = append(out, "")

	// 6. Clustering and segmentation
	if s.patterns.Has("has_clusters") {
		out = append(out, "## 6. Segmentação e Agrupamentos")
		out = append(out, "- Clusters distintos foram identificados nos dados")
		out = append(out, "- **Oportunidade**: Use segmentação para análises direcionadas")
		out = append(out, "")
	}

	// 7. Temporal patterns
	if s.patterns.Has("has_temporal_patterns") {
		out = append(out, "## 7. Padrões Temporais")
		out = append(out, "- Tendências temporais foram identificadas")
		out = append(out, "- **Recomendação**: Considere análise de séries temporais")
		out = append(out, "")
	}

	// 8. Consolidated recommendations
	out = append(out, "## 8. Recomendações Consolidadas")
	var allRecommendations []string
	for _, entry := range entries {
		allRecommendations = append(allRecommendations, entry.Recommendations...)
	}
	uniqueRecommendations := uniqueInOrder(allRecommendations, maxConsolidatedRecommendations)
	if len(uniqueRecommendations) > 0 {
		out = append(out, uniqueRecommendations...)
	} else {
		out = append(out, "- Continue explorando os dados com análises mais específicas")
	}
	out = append(out, "")

	// 9. Next steps
	out = append(out, "## 9. Próximos Passos Sugeridos")
	performed := map[string]bool{}
	for _, tc := range typeCounts {
		performed[tc.analysisType] = true
	}
	var missing []string
	for _, analysisType := range expectedTypes {
		if !performed[analysisType] {
			missing = append(missing, analysisType)
		}
	}
	if len(missing) > 0 {
		out = append(out, "### Análises Recomendadas:")
		for _, analysisType := range missing {
			if desc, ok := typeDescriptions[analysisType]; ok {
				out = append(out, "- "+desc)
			}
		}
	}
	out = append(out, "\n### Ações Gerais:")
	out = append(out, "- Validar descobertas com stakeholders")
	out = append(out, "- Documentar insights para referência futura")
	out = append(out, "- Considerar análises preditivas se apropriado")

	return strings.Join(out, "\n")
}

var typeDescriptions = map[string]string{
	TypeCorrelation:  "Análise de correlações para entender relacionamentos",
	TypeOutlier:      "Detecção de outliers para identificar anomalias",
	TypeDistribution: "Análise de distribuições para entender padrões",
	TypeClustering:   "Clustering para identificar segmentos",
	TypeTemporal:     "Análise temporal para identificar tendências",
	TypeSummary:      "Resumo geral dos dados",
}

type typeCount struct {
	analysisType string
	count        int
}

// countTypes tallies entries per analysis type in first-encountered order.
func countTypes(entries []Entry) []typeCount {
	index := map[string]int{}
	var counts []typeCount
	for _, entry := range entries {
		if i, ok := index[entry.AnalysisType]; ok {
			counts[i].count++
			continue
		}
		index[entry.AnalysisType] = len(counts)
		counts = append(counts, typeCount{analysisType: entry.AnalysisType, count: 1})
	}
	return counts
}

// uniqueInOrder deduplicates keeping first occurrences. A positive max caps
// the result length.
func uniqueInOrder(values []string, max int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
