package bulk

import "errors"

var (
	// ErrExportFailed is returned when results cannot be serialized
	ErrExportFailed = errors.New("failed to export results")
)
