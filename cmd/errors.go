package cmd

import "errors"

var (
	// ErrNoInputs is returned when a bulk input list has no non-blank lines
	ErrNoInputs = errors.New("no inputs to classify")
	// ErrReadInputs is returned when the bulk input list cannot be read
	ErrReadInputs = errors.New("failed to read inputs")
	// ErrWriteExport is returned when the results file cannot be written
	ErrWriteExport = errors.New("failed to write results file")
)
