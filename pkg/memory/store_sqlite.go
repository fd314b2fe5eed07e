package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ArchiveStore persists session transcripts and operational metrics in
// SQLite.
type ArchiveStore struct {
	db *sql.DB
}

// NewArchiveStore creates/opens the archive database at path.
func NewArchiveStore(path string) (*ArchiveStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single shared connection avoids writer lock contention with SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &ArchiveStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *ArchiveStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *ArchiveStore) init() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_key TEXT PRIMARY KEY,
			created_at_ms INTEGER NOT NULL,
			updated_at_ms INTEGER NOT NULL,
			analysis_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			session_key TEXT NOT NULL,
			question TEXT NOT NULL,
			analysis_type TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			findings_json TEXT NOT NULL DEFAULT '[]',
			visualizations_json TEXT NOT NULL DEFAULT '[]',
			patterns_json TEXT NOT NULL DEFAULT '{}',
			recommendations_json TEXT NOT NULL DEFAULT '[]',
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS analyses_session_idx ON analyses(session_key, created_at_ms, id);`,
		`CREATE TABLE IF NOT EXISTS metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			metric TEXT NOT NULL,
			value REAL NOT NULL,
			labels_json TEXT NOT NULL DEFAULT '{}',
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS metrics_metric_idx ON metrics(metric, created_at_ms DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite schema failed on %q: %w", trimSQL(stmt), err)
		}
	}
	return nil
}

// AppendAnalysis records one exchange and bumps the session row in the same
// transaction.
func (s *ArchiveStore) AppendAnalysis(ctx context.Context, sessionKey string, entry Entry) error {
	now := nowMS()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions(session_key, created_at_ms, updated_at_ms, analysis_count)
		VALUES(?, ?, ?, 1)
		ON CONFLICT(session_key) DO UPDATE SET
			updated_at_ms = excluded.updated_at_ms,
			analysis_count = analysis_count + 1`,
		sessionKey, now, now,
	); err != nil {
		return fmt.Errorf("upsert session row: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO analyses(id, session_key, question, analysis_type, timestamp,
			findings_json, visualizations_json, patterns_json, recommendations_json, created_at_ms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionKey, entry.Question, entry.AnalysisType, entry.Timestamp,
		encodeStrings(entry.KeyFindings), encodeStrings(entry.Visualizations),
		encodePatterns(entry.DataPatterns), encodeStrings(entry.Recommendations), now,
	); err != nil {
		return fmt.Errorf("insert analysis row: %w", err)
	}

	return tx.Commit()
}

// ListAnalyses returns a session's recorded entries, oldest first.
func (s *ArchiveStore) ListAnalyses(ctx context.Context, sessionKey string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, analysis_type, timestamp,
			findings_json, visualizations_json, patterns_json, recommendations_json
		FROM analyses
		WHERE session_key = ?
		ORDER BY created_at_ms ASC, id ASC
		LIMIT ?`, sessionKey, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var findings, visualizations, patterns, recommendations string
		if err := rows.Scan(&entry.Question, &entry.AnalysisType, &entry.Timestamp,
			&findings, &visualizations, &patterns, &recommendations); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		entry.KeyFindings = decodeStrings(findings)
		entry.Visualizations = decodeStrings(visualizations)
		entry.DataPatterns = decodePatterns(patterns)
		entry.Recommendations = decodeStrings(recommendations)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *ArchiveStore) AddMetric(ctx context.Context, metric string, value float64, labels map[string]string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metrics(metric, value, labels_json, created_at_ms)
		VALUES(?, ?, ?, ?)`,
		metric, value, encodeLabels(labels), nowMS())
	if err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

func nowMS() int64 { return time.Now().UnixMilli() }

func trimSQL(stmt string) string {
	line := strings.TrimSpace(stmt)
	if len(line) > 96 {
		return line[:96] + "..."
	}
	return line
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStrings(raw string) []string {
	var values []string
	if json.Unmarshal([]byte(raw), &values) != nil {
		return nil
	}
	return values
}

func encodePatterns(patterns map[string]any) string {
	if len(patterns) == 0 {
		return "{}"
	}
	data, err := json.Marshal(patterns)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func decodePatterns(raw string) map[string]any {
	patterns := map[string]any{}
	_ = json.Unmarshal([]byte(raw), &patterns)
	return patterns
}

func encodeLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return "{}"
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return "{}"
	}
	return string(data)
}
