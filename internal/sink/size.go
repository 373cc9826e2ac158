package sink

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize reports a size string whose numeric prefix cannot be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ParseSize converts a human-readable size string such as "10MB" into a
// byte count. Accepted suffixes are KB, MB and GB (case-insensitive,
// surrounding whitespace trimmed); a bare integer is taken as raw bytes.
// Fractional prefixes are rejected.
func ParseSize(spec string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(spec))

	var mult int64 = 1
	switch {
	case strings.HasSuffix(s, "KB"):
		mult = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		mult = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		mult = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, spec)
	}
	return n * mult, nil
}
