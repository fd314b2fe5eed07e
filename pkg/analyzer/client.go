package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the analysis service over its JSON API.
type HTTPClient struct {
	endpoint   string
	options    Options
	httpClient *http.Client
}

func NewHTTPClient(endpoint string, timeout time.Duration, options Options) *HTTPClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		options:    options,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Question     string  `json:"question"`
	AnalysisType string  `json:"analysis_type"`
	Options      Options `json:"options"`
}

func (c *HTTPClient) Analyze(ctx context.Context, question, analysisType string) (Result, error) {
	if c.endpoint == "" {
		return Result{}, fmt.Errorf("analyzer endpoint not configured")
	}

	body, err := json.Marshal(analyzeRequest{
		Question:     question,
		AnalysisType: analysisType,
		Options:      c.options,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, truncateBody(data))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("decode analyze response: %w", err)
	}
	return result, nil
}

func truncateBody(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}
