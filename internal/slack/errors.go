package slack

import "errors"

var (
	// ErrMissingWebhookURL is returned by New when no webhook is configured
	ErrMissingWebhookURL = errors.New("slack: webhook url is required to post scan summaries")
	// ErrEmptyMessage is returned when a message has no fallback text
	ErrEmptyMessage = errors.New("slack: message has no fallback text")
	// ErrNotificationFailed wraps transport failures while posting a summary
	ErrNotificationFailed = errors.New("slack: posting scan summary failed")
	// ErrUnexpectedStatus is returned when the webhook answers with anything but 200
	ErrUnexpectedStatus = errors.New("slack: webhook rejected scan summary")
)
