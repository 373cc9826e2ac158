// Package normalizer converts heterogeneous webhook payloads into
// canonical notification records.
//
// Normalization is total: every field of the result carries a default, so
// a partial, empty or malformed payload still yields a loggable record.
// Failure signaling is reserved for transport-level problems; a JSON body
// that does not parse is treated as an empty object.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/driftlock/loggifly-sink/internal/models"
)

// Ordered candidate field names per logical field, first present wins.
var (
	keywordFields = []string{"keyword", "keywords"}
	messageFields = []string{"message", "title", "body"}
)

const (
	defaultContainer = "unknown"
	defaultKeyword   = "unknown"
	defaultMessage   = "No message"
)

// Normalize builds a Notification from an inbound request body. Bodies
// with a JSON content type are parsed as JSON; anything else becomes the
// message field verbatim. receivedAt supplies the timestamp default.
func Normalize(contentType string, body []byte, receivedAt time.Time) models.Notification {
	var data map[string]interface{}

	if strings.Contains(contentType, "application/json") {
		if err := json.Unmarshal(body, &data); err != nil {
			data = map[string]interface{}{}
		}
	} else {
		data = map[string]interface{}{"message": string(body)}
	}

	rec := models.Notification{
		Container: stringField(data, []string{"container"}, defaultContainer),
		Keyword:   stringField(data, keywordFields, defaultKeyword),
		Message:   stringField(data, messageFields, defaultMessage),
		Timestamp: stringField(data, []string{"timestamp"}, receivedAt.Format(time.RFC3339)),
		Raw:       data,
	}

	rec.Title = stringField(data, []string{"title"},
		fmt.Sprintf("%s: %s", rec.Container, rec.Keyword))

	return rec
}

// stringField resolves the first present candidate key to a string,
// joining list values with ", ". Missing, empty and unconvertible values
// fall through to the next candidate.
func stringField(data map[string]interface{}, candidates []string, def string) string {
	for _, key := range candidates {
		v, ok := data[key]
		if !ok {
			continue
		}
		if s := asString(v); s != "" {
			return s
		}
	}
	return def
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := asString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
