package logging

import "log/slog"

// Common field names for consistent log output.
const (
	FieldService   = "service"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldContainer = "container"
	FieldKeyword   = "keyword"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Error returns a slog attribute for an error value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// Container returns a slog attribute for the source container name.
func Container(name string) slog.Attr {
	return slog.String(FieldContainer, name)
}

// Keyword returns a slog attribute for the matched keyword.
func Keyword(kw string) slog.Attr {
	return slog.String(FieldKeyword, kw)
}
