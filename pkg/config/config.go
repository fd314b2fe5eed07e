package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Analyzer AnalyzerConfig `json:"analyzer"`
	Memory   MemoryConfig   `json:"memory"`
	Chat     ChatConfig     `json:"chat"`
}

// AnalyzerConfig points at the external analysis service and carries the
// knobs forwarded with every analysis request.
type AnalyzerConfig struct {
	Endpoint             string  `json:"endpoint" env:"DATASAGE_ANALYZER_ENDPOINT"`
	TimeoutSeconds       int     `json:"timeout_seconds" env:"DATASAGE_ANALYZER_TIMEOUT_SECONDS"`
	CorrelationThreshold float64 `json:"correlation_threshold" env:"DATASAGE_ANALYZER_CORRELATION_THRESHOLD"`
	MaxClusters          int     `json:"max_clusters" env:"DATASAGE_ANALYZER_MAX_CLUSTERS"`
	OutlierContamination float64 `json:"outlier_contamination" env:"DATASAGE_ANALYZER_OUTLIER_CONTAMINATION"`
}

type MemoryConfig struct {
	MaxInteractions int    `json:"max_interactions" env:"DATASAGE_MEMORY_MAX_INTERACTIONS"`
	ContextEntries  int    `json:"context_entries" env:"DATASAGE_MEMORY_CONTEXT_ENTRIES"`
	ArchivePath     string `json:"archive_path" env:"DATASAGE_MEMORY_ARCHIVE_PATH"`
	ArchiveEnabled  bool   `json:"archive_enabled" env:"DATASAGE_MEMORY_ARCHIVE_ENABLED"`
}

type ChatConfig struct {
	Workspace string `json:"workspace" env:"DATASAGE_CHAT_WORKSPACE"`
}

func DefaultConfig() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Endpoint:             "http://127.0.0.1:8501",
			TimeoutSeconds:       120,
			CorrelationThreshold: 0.5,
			MaxClusters:          10,
			OutlierContamination: 0.1,
		},
		Memory: MemoryConfig{
			MaxInteractions: 100,
			ContextEntries:  3,
			ArchivePath:     "",
			ArchiveEnabled:  true,
		},
		Chat: ChatConfig{
			Workspace: "~/.datasage/workspace",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if envErr := env.Parse(cfg); envErr != nil {
				return nil, envErr
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) WorkspacePath() string {
	return expandHome(c.Chat.Workspace)
}

// ArchiveDBPath resolves the SQLite archive location. Empty result means the
// archive is disabled.
func (c *Config) ArchiveDBPath() string {
	if !c.Memory.ArchiveEnabled {
		return ""
	}
	if c.Memory.ArchivePath != "" {
		return expandHome(c.Memory.ArchivePath)
	}
	return filepath.Join(c.WorkspacePath(), "state", "sessions.db")
}

func (c *Config) AnalyzerTimeout() time.Duration {
	if c.Analyzer.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.Analyzer.TimeoutSeconds) * time.Second
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
