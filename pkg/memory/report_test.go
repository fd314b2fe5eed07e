package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/rpaludo/datasage/pkg/analyzer"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(Config{MaxInteractions: 10})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGenerateSummary_EmptySession(t *testing.T) {
	s := newTestSession(t)
	if got := s.GenerateSummary(); got != "Nenhuma análise realizada ainda." {
		t.Fatalf("summary = %q", got)
	}
}

func TestGenerateConclusions_EmptySession(t *testing.T) {
	s := newTestSession(t)
	want := "Nenhuma análise foi realizada ainda. Por favor, faça algumas análises primeiro."
	if got := s.GenerateConclusions(); got != want {
		t.Fatalf("conclusions = %q", got)
	}
}

func TestGenerateSummary_Idempotent(t *testing.T) {
	s := newTestSession(t)
	s.AddAnalysis(context.Background(), "Existe correlação?", analyzer.Result{
		Analysis: "Correlação forte encontrada.\n- X e Y andam juntas",
	}, TypeCorrelation)

	first := s.GenerateSummary()
	second := s.GenerateSummary()
	if first != second {
		t.Fatal("summary must be idempotent without intervening AddAnalysis")
	}
	if !strings.Contains(first, "Total de análises: 1") {
		t.Errorf("summary missing total: %q", first)
	}
	if !strings.Contains(first, "- correlation: 1 análises") {
		t.Errorf("summary missing type breakdown: %q", first)
	}
	if !strings.Contains(first, "- has_correlations: detectado em 1 análises") {
		t.Errorf("summary missing pattern breakdown: %q", first)
	}
}

func TestGenerateSummary_TypeOrderIsFirstEncountered(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.AddAnalysis(ctx, "outliers?", analyzer.Result{Analysis: "sem nada"}, TypeOutlier)
	s.AddAnalysis(ctx, "correlação?", analyzer.Result{Analysis: "sem nada"}, TypeCorrelation)
	s.AddAnalysis(ctx, "mais outliers?", analyzer.Result{Analysis: "sem nada"}, TypeOutlier)

	summary := s.GenerateSummary()
	outlierIdx := strings.Index(summary, "- outlier: 2 análises")
	correlationIdx := strings.Index(summary, "- correlation: 1 análises")
	if outlierIdx == -1 || correlationIdx == -1 {
		t.Fatalf("missing type lines in %q", summary)
	}
	if outlierIdx > correlationIdx {
		t.Fatal("expected first-encountered type listed first")
	}
}

func TestGenerateConclusions_SectionsAndNarratives(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.AddAnalysis(ctx, "Existe correlação?", analyzer.Result{
		Analysis: "Correlação forte encontrada entre X e Y.\n- coeficiente de 0.92\nRecomendações:\n- Considere análise de multicolinearidade",
	}, TypeCorrelation)
	s.AddAnalysis(ctx, "Há outliers?", analyzer.Result{
		Analysis: "Outliers detectados em preço: alta porcentagem dos registros.",
	}, TypeOutlier)

	report := s.GenerateConclusions()

	for _, want := range []string{
		"# Conclusões Consolidadas da Análise Exploratória de Dados",
		"## 1. Resumo das Análises Realizadas",
		"- **correlation**: 1 análise(s)",
		"## 2. Principais Padrões Identificados",
		"- **Has Correlations**: Identificado em 1 análise(s)",
		"  - Detectado em: correlation",
		"## 3. Principais Descobertas por Tipo de Análise",
		"## 4. Insights sobre Qualidade dos Dados",
		"- Outliers detectados: Podem indicar problemas de qualidade ou valores genuinamente extremos",
		"- Alta concentração de outliers: Requer investigação aprofundada",
		"## 5. Relacionamentos entre Variáveis",
		"- Algumas correlações são particularmente fortes",
		"## 8. Recomendações Consolidadas",
		"- Considere análise de multicolinearidade",
		"## 9. Próximos Passos Sugeridos",
		"- Análise de distribuições para entender padrões",
		"### Ações Gerais:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("conclusions missing %q", want)
		}
	}

	// No clustering or temporal signals were recorded.
	if strings.Contains(report, "## 6. Segmentação e Agrupamentos") {
		t.Error("clustering section must be omitted without has_clusters")
	}
	if strings.Contains(report, "## 7. Padrões Temporais") {
		t.Error("temporal section must be omitted without has_temporal_patterns")
	}
	// Performed types must not be suggested again.
	if strings.Contains(report, "- Análise de correlações para entender relacionamentos") {
		t.Error("performed correlation analysis must not be suggested as next step")
	}
}

func TestGenerateConclusions_GoodQualityFallback(t *testing.T) {
	s := newTestSession(t)
	s.AddAnalysis(context.Background(), "resumo?", analyzer.Result{Analysis: "tudo normal"}, TypeSummary)

	report := s.GenerateConclusions()
	if !strings.Contains(report, "- Dados aparentam boa qualidade geral") {
		t.Errorf("expected quality fallback in %q", report)
	}
	if !strings.Contains(report, "- Variáveis aparentam ser relativamente independentes") {
		t.Errorf("expected correlation fallback in %q", report)
	}
	if !strings.Contains(report, "- Continue explorando os dados com análises mais específicas") {
		t.Errorf("expected recommendation fallback in %q", report)
	}
	if !strings.Contains(report, "- Nenhum padrão global identificado ainda") {
		t.Errorf("expected pattern fallback in %q", report)
	}
}

func TestGenerateConclusions_DeduplicatesFindingsInFirstSeenOrder(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.AddAnalysis(ctx, "q1", analyzer.Result{Analysis: "- achado A\n- achado B"}, TypeCorrelation)
	s.AddAnalysis(ctx, "q2", analyzer.Result{Analysis: "- achado A\n- achado C"}, TypeCorrelation)

	report := s.GenerateConclusions()
	if strings.Count(report, "- achado A") != 1 {
		t.Errorf("expected deduplicated finding, report: %q", report)
	}
	idxA := strings.Index(report, "- achado A")
	idxB := strings.Index(report, "- achado B")
	idxC := strings.Index(report, "- achado C")
	if !(idxA < idxB && idxB < idxC) {
		t.Errorf("expected first-occurrence order, got A=%d B=%d C=%d", idxA, idxB, idxC)
	}
}
