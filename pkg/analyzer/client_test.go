package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.AnalysisType != "correlation" {
			t.Errorf("analysis_type = %q, want correlation", req.AnalysisType)
		}
		if req.Options.MaxClusters != 10 {
			t.Errorf("options.max_clusters = %d, want 10", req.Options.MaxClusters)
		}
		_ = json.NewEncoder(w).Encode(Result{
			Analysis:        "Correlação forte encontrada entre X e Y.",
			Plots:           map[string]json.RawMessage{"correlation_heatmap": json.RawMessage(`{}`)},
			Recommendations: []string{"- Considere análise de multicolinearidade"},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second, Options{CorrelationThreshold: 0.5, MaxClusters: 10})
	result, err := client.Analyze(context.Background(), "Existe correlação?", "correlation")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Analysis == "" {
		t.Fatal("expected analysis text")
	}
	if _, ok := result.Plots["correlation_heatmap"]; !ok {
		t.Errorf("expected correlation_heatmap plot, got %v", result.Plots)
	}
}

func TestHTTPClient_AnalyzeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second, Options{})
	if _, err := client.Analyze(context.Background(), "q", "general"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestHTTPClient_MissingEndpoint(t *testing.T) {
	client := NewHTTPClient("", time.Second, Options{})
	if _, err := client.Analyze(context.Background(), "q", "general"); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
