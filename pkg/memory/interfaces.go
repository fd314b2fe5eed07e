package memory

import "context"

// Archive is durable, append-only storage for the session transcript. The
// live session state never reads from it; it exists so a conversation can
// be inspected after the process ends.
type Archive interface {
	AppendAnalysis(ctx context.Context, sessionKey string, entry Entry) error
	ListAnalyses(ctx context.Context, sessionKey string, limit int) ([]Entry, error)
	AddMetric(ctx context.Context, metric string, value float64, labels map[string]string) error
	Close() error
}
