package models

import "time"

// Notification is the canonical, fully-defaulted form of an inbound
// LoggiFly webhook payload. Every field has a total default so a partial
// or malformed payload still produces a loggable record.
type Notification struct {
	Container string `json:"container"`
	Keyword   string `json:"keyword"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`

	// Raw holds the original payload. Only the json log format reads it,
	// for the version and type fields.
	Raw map[string]interface{} `json:"-"`
}

// WebhookResponse is the body returned by POST /webhook.
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IngestionStats tracks in-process notification counters.
type IngestionStats struct {
	TotalNotifications  int64     `json:"total_notifications"`
	FailedNotifications int64     `json:"failed_notifications"`
	TotalBytes          int64     `json:"total_bytes"`
	LastNotification    time.Time `json:"last_notification"`
}
