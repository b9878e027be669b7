package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// mockAnalyzer implements classify.Analyzer for testing. Inputs containing
// "down" produce ERROR results; everything else scores 80.
type mockAnalyzer struct {
	mu    sync.Mutex
	calls []string
}

func (m *mockAnalyzer) Analyze(_ context.Context, input string) *types.Result {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if strings.Contains(input, "down") {
		return &types.Result{
			Status:     types.StatusError,
			Input:      input,
			Host:       input,
			BaseDomain: input,
			Error:      "Cannot access website (HTTP 503)",
		}
	}

	return &types.Result{
		Status:          types.StatusOK,
		Input:           input,
		Host:            input,
		BaseDomain:      input,
		FinalURL:        "https://" + input + "/",
		FinalHost:       input,
		FinalBaseDomain: input,
		Score:           80,
		Label:           types.LabelGoodSafe,
		Reason:          "Risk points: 20. Evaluated final URL + root domain context.",
	}
}

func (m *mockAnalyzer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.calls...)
}

func newTestRouter(analyzer *mockAnalyzer) http.Handler {
	return NewRouter(RouterConfig{Analyzer: analyzer, MaxBodySize: 1024})
}

func TestHandleHealth(t *testing.T) {
	handler := newTestRouter(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", response.Status)
	}

	if response.Service != "lqtester" {
		t.Errorf("expected service lqtester, got %s", response.Service)
	}

	if response.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestHandleAnalyze_Valid(t *testing.T) {
	analyzer := &mockAnalyzer{}
	handler := newTestRouter(analyzer)

	body, _ := json.Marshal(AnalyzeRequest{Input: "  example.com  "})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var response AnalyzeResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Success {
		t.Error("expected success to be true")
	}

	if response.Data == nil || response.Data.Label != types.LabelGoodSafe {
		t.Fatalf("expected GOOD_SAFE result, got %+v", response.Data)
	}

	if calls := analyzer.Calls(); len(calls) != 1 || calls[0] != "  example.com  " {
		t.Errorf("expected raw input to reach the analyzer, got %v", calls)
	}

	if response.Data.Input != "  example.com  " {
		t.Errorf("expected data.input to echo the raw input, got %q", response.Data.Input)
	}
}

func TestHandleAnalyze_ErrorResultIsNotAFailure(t *testing.T) {
	handler := newTestRouter(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"input":"down.example"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var raw struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !raw.Success {
		t.Error("expected success to be true")
	}

	data := raw.Data
	if data["status"] != "ERROR" {
		t.Errorf("expected data.status ERROR, got %v", data["status"])
	}

	if data["error"] != "Cannot access website (HTTP 503)" {
		t.Errorf("unexpected error message: %v", data["error"])
	}

	if _, ok := data["label"]; ok {
		t.Error("expected ERROR result to omit label")
	}
}

func TestHandleAnalyze_Rejected(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "invalid json", body: "invalid json", wantCode: errCodeInvalidRequest},
		{name: "unknown field", body: `{"domain":"example.com"}`, wantCode: errCodeInvalidRequest},
		{name: "multiple objects", body: `{"input":"a.com"}{"input":"b.com"}`, wantCode: errCodeInvalidRequest},
		{name: "too large", body: `{"input":"` + strings.Repeat("a", 2048) + `"}`, wantCode: errCodeInvalidRequest},
		{name: "missing input", body: `{}`, wantCode: errCodeValidation},
		{name: "blank input", body: `{"input":"   "}`, wantCode: errCodeValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			handler := newTestRouter(analyzer)

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var response AnalyzeResponse
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Success {
				t.Error("expected success to be false")
			}

			if response.Error == nil || response.Error.Code != tc.wantCode {
				t.Errorf("expected error code %s, got %+v", tc.wantCode, response.Error)
			}

			if len(analyzer.Calls()) != 0 {
				t.Error("expected analyzer not to be called")
			}
		})
	}
}

func TestHandleAnalyze_InvalidMethod(t *testing.T) {
	handler := newTestRouter(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
