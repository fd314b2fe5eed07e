package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpaludo/datasage/pkg/analyzer"
	"github.com/rpaludo/datasage/pkg/config"
	"github.com/rpaludo/datasage/pkg/logger"
	"github.com/rpaludo/datasage/pkg/memory"
)

// Orchestrator routes each user question: conclusion requests are answered
// straight from session memory, everything else goes to the analysis service
// enriched with relevant past context.
type Orchestrator struct {
	cfg      *config.Config
	analyzer analyzer.Analyzer
	session  *memory.Session
}

func New(cfg *config.Config, an analyzer.Analyzer) (*Orchestrator, error) {
	session, err := memory.NewSession(memory.Config{
		MaxInteractions: cfg.Memory.MaxInteractions,
		ArchivePath:     cfg.ArchiveDBPath(),
	})
	if err != nil {
		return nil, fmt.Errorf("initialize session memory: %w", err)
	}

	return &Orchestrator{
		cfg:      cfg,
		analyzer: an,
		session:  session,
	}, nil
}

// Process answers one user question and records the exchange in session
// memory. Slash commands are handled locally and never recorded.
func (o *Orchestrator) Process(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	if response, handled := o.handleCommand(ctx, question); handled {
		return response, nil
	}

	analysisType := memory.DetectAnalysisType(question)
	logger.InfoCF("agent", fmt.Sprintf("Processing question: %s", truncate(question, 80)),
		map[string]interface{}{
			"analysis_type": analysisType,
			"session_key":   o.session.Key(),
		})

	// Conclusion requests are synthesized from memory without calling the
	// analysis service.
	if analysisType == memory.TypeConclusions {
		report := o.session.GenerateConclusions()
		o.session.AddAnalysis(ctx, question, analyzer.Result{Analysis: report}, memory.TypeConclusions)
		return report, nil
	}

	relevant := o.session.ContextualMemory(question, o.cfg.Memory.ContextEntries)
	enriched := question + memory.FormatContext(relevant)

	result, err := o.analyzer.Analyze(ctx, enriched, analysisType)
	if err != nil {
		logger.ErrorCF("agent", "Analysis request failed",
			map[string]interface{}{
				"analysis_type": analysisType,
				"error":         err.Error(),
			})
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	entry := o.session.AddAnalysis(ctx, question, result, analysisType)
	logger.InfoCF("agent", "Analysis recorded",
		map[string]interface{}{
			"analysis_type":   analysisType,
			"findings":        len(entry.KeyFindings),
			"recommendations": len(entry.Recommendations),
			"context_entries": len(relevant),
		})

	return result.Analysis, nil
}

func (o *Orchestrator) handleCommand(ctx context.Context, content string) (string, bool) {
	if !strings.HasPrefix(content, "/") {
		return "", false
	}

	switch strings.Fields(content)[0] {
	case "/memoria":
		return o.session.GenerateSummary(), true
	case "/conclusoes":
		return o.session.GenerateConclusions(), true
	case "/limpar":
		o.session.Clear(ctx)
		return "Memória da sessão limpa.", true
	case "/ajuda":
		return strings.Join([]string{
			"Comandos disponíveis:",
			"- /memoria: resumo das análises da sessão",
			"- /conclusoes: conclusões consolidadas",
			"- /limpar: limpa a memória da sessão",
		}, "\n"), true
	}

	return fmt.Sprintf("Comando desconhecido: %s. Use /ajuda para ver os comandos.", content), true
}

// Summary renders the session digest.
func (o *Orchestrator) Summary() string { return o.session.GenerateSummary() }

// Conclusions renders the consolidated report.
func (o *Orchestrator) Conclusions() string { return o.session.GenerateConclusions() }

// ClearMemory drops the session's live state.
func (o *Orchestrator) ClearMemory(ctx context.Context) { o.session.Clear(ctx) }

// Session exposes the underlying memory session.
func (o *Orchestrator) Session() *memory.Session { return o.session }

func (o *Orchestrator) Close() error { return o.session.Close() }

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
