// Package format renders notifications as single log lines.
package format

import (
	"encoding/json"
	"fmt"

	"github.com/driftlock/loggifly-sink/internal/models"
)

// Mode selects one of the supported log line representations.
type Mode string

const (
	ModeDetailed Mode = "detailed"
	ModeSimple   Mode = "simple"
	ModeJSON     Mode = "json"
)

// ParseMode maps a configured format name to a Mode. Unknown names fall
// back to detailed.
func ParseMode(name string) Mode {
	switch Mode(name) {
	case ModeSimple, ModeJSON, ModeDetailed:
		return Mode(name)
	default:
		return ModeDetailed
	}
}

// jsonEntry fixes the key set and order of the json mode output.
type jsonEntry struct {
	Timestamp string `json:"timestamp"`
	Container string `json:"container"`
	Keyword   string `json:"keyword"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Type      string `json:"type"`
}

// Format renders rec as one log line in the given mode. It is total: every
// record produced by the normalizer formats without error, so a marshal
// failure cannot occur for the fixed string-only json entry.
func Format(rec models.Notification, mode Mode) string {
	switch mode {
	case ModeSimple:
		return fmt.Sprintf("[%s] %s: %s", rec.Container, rec.Keyword, rec.Message)
	case ModeJSON:
		entry := jsonEntry{
			Timestamp: rec.Timestamp,
			Container: rec.Container,
			Keyword:   rec.Keyword,
			Title:     rec.Title,
			Message:   rec.Message,
			Version:   rawString(rec.Raw, "version", "1.0"),
			Type:      rawString(rec.Raw, "type", "info"),
		}
		data, _ := json.Marshal(entry)
		return string(data)
	default:
		return fmt.Sprintf("%s | %s | %s", rec.Container, rec.Keyword, rec.Message)
	}
}

// rawString pulls a string field out of the original payload, falling back
// to def when absent or not a string.
func rawString(raw map[string]interface{}, key, def string) string {
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return def
}
