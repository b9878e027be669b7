// Package api exposes the site classifier over HTTP.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/classify"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// serviceName is reported by the health endpoint
const serviceName = "lqtester"

// Handler manages API endpoints
type Handler struct {
	analyzer    classify.Analyzer
	notifier    Notifier
	maxBodySize int64
	maxItems    int
	workers     int
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Service   string `json:"service" example:"lqtester"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AnalyzeRequest represents a single site classification request
type AnalyzeRequest struct {
	Input string `json:"input" example:"http://example.com/redirect?x=1" description:"Domain or URL to classify"`
}

// AnalyzeResponse represents the classification response
type AnalyzeResponse struct {
	Success bool          `json:"success" example:"true" description:"Whether the request was processed"`
	Data    *types.Result `json:"data,omitempty" description:"Classification result, which may itself carry status ERROR"`
	Error   *Error        `json:"error,omitempty" description:"Normalized error when the request was rejected"`
}

// handleAnalyze classifies a single input. An unreachable site is a valid
// outcome and is returned with 200 and data.status ERROR.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		respondWithError(w, http.StatusBadRequest, errCodeValidation, ErrInputRequired.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    h.analyzer.Analyze(r.Context(), req.Input),
	})
}

// respondWithError sends a normalized error response
func respondWithError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, AnalyzeResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
