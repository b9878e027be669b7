package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrInputRequired is returned when an analyze request has a blank input
	ErrInputRequired = errors.New("input required")
	// ErrInputsRequired is returned when a bulk request has no non-blank inputs
	ErrInputsRequired = errors.New("at least one non-blank input required")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
)
