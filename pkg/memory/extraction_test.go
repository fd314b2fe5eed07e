package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPatterns(t *testing.T) {
	testcases := []struct {
		name string
		text string
		want map[string]any
	}{
		{
			name: "empty-text",
			text: "",
			want: map[string]any{},
		},
		{
			name: "no-recognized-keywords",
			text: "O dataset possui 500 linhas e 12 colunas.",
			want: map[string]any{},
		},
		{
			name: "correlation-only",
			text: "Há correlação moderada entre idade e renda.",
			want: map[string]any{"has_correlations": true},
		},
		{
			name: "strong-correlation",
			text: "Correlação forte encontrada entre X e Y.",
			want: map[string]any{"has_correlations": true, "strong_correlations": true},
		},
		{
			name: "outliers-with-high-percentage",
			text: "Outliers detectados: alta porcentagem nas variáveis de preço.",
			want: map[string]any{"has_outliers": true, "many_outliers": true},
		},
		{
			name: "english-keywords",
			text: "Strong correlation found; the distribution shows skew.",
			want: map[string]any{
				"has_correlations":         true,
				"strong_correlations":      true,
				"asymmetric_distributions": true,
			},
		},
		{
			name: "independent-families",
			text: "Identificamos clusters e uma tendência de alta ao longo do tempo.",
			want: map[string]any{"has_clusters": true, "has_temporal_patterns": true},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractPatterns(tc.text))
		})
	}
}

func TestExtractPatterns_OnlyKnownKeys(t *testing.T) {
	known := map[string]bool{
		"has_correlations":         true,
		"strong_correlations":      true,
		"has_outliers":             true,
		"many_outliers":            true,
		"asymmetric_distributions": true,
		"has_clusters":             true,
		"has_temporal_patterns":    true,
	}
	text := "correlação forte, outlier atípico com alta porcentagem, distribuição assimétrica, agrupamento, tendência"
	for key := range ExtractPatterns(text) {
		if !known[key] {
			t.Errorf("unexpected pattern key %q", key)
		}
	}
}

func TestExtractFindings_BulletsAndKeywords(t *testing.T) {
	text := strings.Join([]string{
		"Resultados da análise:",
		"- Média de idade: 34 anos",
		"• Renda apresenta cauda longa",
		"Foi identificado um grupo dominante.",
		"Nada relevante nesta linha.",
	}, "\n")

	findings := ExtractFindings(text)
	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d: %v", len(findings), findings)
	}
	if findings[0] != "- Média de idade: 34 anos" {
		t.Errorf("unexpected first finding %q", findings[0])
	}
	if findings[2] != "Foi identificado um grupo dominante." {
		t.Errorf("unexpected keyword finding %q", findings[2])
	}
}

func TestExtractFindings_CapsAtTen(t *testing.T) {
	var lines []string
	for i := 0; i < 25; i++ {
		lines = append(lines, fmt.Sprintf("- achado %d", i))
	}
	findings := ExtractFindings(strings.Join(lines, "\n"))
	if len(findings) != 10 {
		t.Fatalf("expected findings capped at 10, got %d", len(findings))
	}
	if findings[0] != "- achado 0" {
		t.Errorf("expected original order preserved, got %q first", findings[0])
	}
}

func TestExtractRecommendations_SectionSplit(t *testing.T) {
	text := strings.Join([]string{
		"Análise concluída.",
		"- este hífen vem antes da seção e não deve aparecer",
		"Recomendações:",
		"- Normalizar as variáveis numéricas",
		"- Investigar os outliers de preço",
	}, "\n")

	recs := ExtractRecommendations(text)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0] != "- Normalizar as variáveis numéricas" {
		t.Errorf("unexpected first recommendation %q", recs[0])
	}
}

func TestExtractRecommendations_NoMarker(t *testing.T) {
	if recs := ExtractRecommendations("- apenas uma lista sem contexto"); len(recs) != 0 {
		t.Fatalf("expected no recommendations without marker, got %v", recs)
	}
}

func TestExtractRecommendations_MarkerWithoutHeadingScansWholeText(t *testing.T) {
	text := "Consider the following:\n- use stratified sampling\n- check for leakage"
	recs := ExtractRecommendations(text)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations via whole-text fallback, got %v", recs)
	}
}

func TestExtractRecommendations_CapsAtFive(t *testing.T) {
	var lines []string
	lines = append(lines, "Recomendações:")
	for i := 0; i < 9; i++ {
		lines = append(lines, fmt.Sprintf("- recomendação %d", i))
	}
	recs := ExtractRecommendations(strings.Join(lines, "\n"))
	if len(recs) != 5 {
		t.Fatalf("expected recommendations capped at 5, got %d", len(recs))
	}
}
