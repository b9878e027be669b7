package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/classify"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/fetch"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/fetch/fetchtest"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/trust"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter(RouterConfig{})

	if router == nil {
		t.Fatal("Expected router to be created")
	}
}

func TestPingEndpoint(t *testing.T) {
	handler := newTestRouter(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for ping endpoint, got %d", w.Code)
	}

	if body := w.Body.String(); body != "." {
		t.Errorf("Expected ping body '.', got %q", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	handler := newTestRouter(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// blockingAnalyzer waits for the request context to end
type blockingAnalyzer struct{}

func (blockingAnalyzer) Analyze(ctx context.Context, input string) *types.Result {
	<-ctx.Done()

	return &types.Result{Status: types.StatusError, Input: input, Error: ctx.Err().Error()}
}

func TestRequestTimeoutCancelsAnalysis(t *testing.T) {
	handler := NewRouter(RouterConfig{Analyzer: blockingAnalyzer{}, Timeout: 50 * time.Millisecond})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"input":"slow.example"}`))
	w := httptest.NewRecorder()

	done := make(chan struct{})

	go func() {
		handler.ServeHTTP(w, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("request was not cancelled by the router timeout")
	}
}

func TestIntegrationWithPipeline(t *testing.T) {
	tr := fetchtest.NewTransport(map[string]http.Handler{
		"https://short.example": fetchtest.Redirect("http://landing.example/offer"),
		"http://landing.example": fetchtest.HTML("<html><body><h1>Lorem ipsum dolor sit amet</h1></body></html>"),
	})

	pipeline := classify.New(trust.Default(), fetch.New(fetch.WithHTTPClient(tr.Client())))
	handler := NewRouter(RouterConfig{Analyzer: pipeline})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"input":"short.example"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response AnalyzeResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	res := response.Data
	if res == nil {
		t.Fatal("expected result data")
	}

	if res.FinalURL != "http://landing.example/offer" {
		t.Errorf("expected final URL after redirect, got %s", res.FinalURL)
	}

	if res.FinalBaseDomain != "landing.example" {
		t.Errorf("expected final base domain landing.example, got %s", res.FinalBaseDomain)
	}

	if res.Score != 25 || res.Label != types.LabelLowQuality {
		t.Errorf("expected LOW_QUALITY with score 25, got %s %d", res.Label, res.Score)
	}
}
