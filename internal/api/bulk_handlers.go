package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/bulk"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// exportFilename is the attachment name of the bulk export download
const exportFilename = "results.json"

// BulkRequest represents a bulk classification request
type BulkRequest struct {
	// Inputs lists domains or URLs, one per entry
	Inputs []string `json:"inputs,omitempty"`
	// Text holds newline separated domains or URLs, appended after Inputs
	Text string `json:"text,omitempty"`
	// NotifySlack posts a summary to the configured webhook when true
	NotifySlack bool `json:"notify_slack,omitempty"`
}

// BulkResult holds the outcome of a bulk scan
type BulkResult struct {
	// Rows condenses each result, in input order
	Rows []types.Row `json:"rows"`
	// Results holds the full result for each input, in input order
	Results []*types.Result `json:"results"`
	// Truncated reports whether inputs beyond the item limit were dropped
	Truncated bool `json:"truncated"`
	// SlackNotified indicates whether a Slack notification was sent
	SlackNotified bool `json:"slack_notified"`
}

// BulkResponse is the API response envelope for bulk scans
type BulkResponse struct {
	// Success indicates whether the request was processed
	Success bool `json:"success"`
	// Data holds the scan result when successful
	Data *BulkResult `json:"data,omitempty"`
	// Error is the normalized error payload when the request was rejected
	Error *Error `json:"error,omitempty"`
}

// handleBulk classifies every input in the request and returns rows plus full results
func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	req, inputs, truncated, ok := h.readBulkRequest(w, r)
	if !ok {
		return
	}

	results := bulk.Scan(r.Context(), h.analyzer, inputs, bulk.WithWorkers(h.workers))

	res := &BulkResult{
		Rows:      bulk.Summarize(results),
		Results:   results,
		Truncated: truncated,
	}

	if req.NotifySlack && h.notifier != nil {
		if err := h.notifier.Notify(r.Context(), res.Rows); err != nil {
			log.Error().Err(err).Int("items", len(inputs)).Msg("bulk slack notification failed")
		} else {
			res.SlackNotified = true
		}
	}

	writeJSON(w, http.StatusOK, BulkResponse{
		Success: true,
		Data:    res,
	})
}

// handleBulkExport classifies every input and returns the full results as a JSON download
func (h *Handler) handleBulkExport(w http.ResponseWriter, r *http.Request) {
	_, inputs, _, ok := h.readBulkRequest(w, r)
	if !ok {
		return
	}

	results := bulk.Scan(r.Context(), h.analyzer, inputs, bulk.WithWorkers(h.workers))

	var buf bytes.Buffer
	if err := bulk.Export(&buf, results); err != nil {
		log.Error().Err(err).Msg("bulk export failed")
		respondBulkError(w, http.StatusInternalServerError, errCodeInternal, err.Error())

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write bulk export")
	}
}

// readBulkRequest decodes and validates a bulk request, writing the error
// response itself when the request is rejected
func (h *Handler) readBulkRequest(w http.ResponseWriter, r *http.Request) (BulkRequest, []string, bool, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req BulkRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondBulkError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return req, nil, false, false
	}

	lines := req.Inputs
	if req.Text != "" {
		lines = append(lines, strings.Split(req.Text, "\n")...)
	}

	inputs, truncated := bulk.Prepare(lines, h.maxItems)
	if len(inputs) == 0 {
		respondBulkError(w, http.StatusBadRequest, errCodeValidation, ErrInputsRequired.Error())
		return req, nil, false, false
	}

	return req, inputs, truncated, true
}

// respondBulkError sends a normalized bulk error response
func respondBulkError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, BulkResponse{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
