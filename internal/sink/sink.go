// Package sink implements the size-bounded rotating log file that webhook
// notifications are appended to.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/driftlock/loggifly-sink/internal/metrics"
)

// ErrWrite reports a failed append to the underlying log file.
var ErrWrite = errors.New("sink write error")

// Option configures a Sink.
type Option func(*Sink)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation and the file grows unbounded.
func WithMaxSize(bytes int64) Option {
	return func(s *Sink) { s.maxSize = bytes }
}

// WithBackupCount sets how many rotated backups to keep. With 0 backups
// the file is truncated in place when it fills up.
func WithBackupCount(n int) Option {
	return func(s *Sink) { s.backupCount = n }
}

// Sink is an append-only file writer with optional size-based rotation.
// When the active file would exceed maxSize it is renamed into the
// numbered backup chain ({path}.1 newest, {path}.N oldest) and a fresh
// file is opened. The sink is opened once at process start and lives for
// the process lifetime.
type Sink struct {
	mu          sync.Mutex
	f           *os.File
	path        string
	size        int64
	maxSize     int64 // 0 = no rotation
	backupCount int
}

// New creates a sink appending to path, creating the parent directory if
// needed.
func New(path string, opts ...Option) (*Sink, error) {
	s := &Sink{
		path:        path,
		backupCount: 5,
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sink: create dir %s: %w", dir, err)
		}
	}
	if err := s.openFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the active log file path.
func (s *Sink) Path() string {
	return s.path
}

// Append writes line plus a trailing newline to the active file, rotating
// first if the write would push the file past its size bound. The whole
// check-rotate-write sequence runs under the sink mutex so concurrent
// appends cannot interleave a rotation with another writer's size check.
// At most one rotation happens per append: a single line larger than
// maxSize is still written in full to the freshly rotated file.
func (s *Sink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := append([]byte(line), '\n')

	if s.maxSize > 0 && s.size+int64(len(data)) > s.maxSize {
		if err := s.rotate(); err != nil {
			metrics.SinkWriteErrors.Inc()
			return fmt.Errorf("sink: rotate %s: %w: %w", s.path, ErrWrite, err)
		}
		metrics.RotationsTotal.Inc()
	}

	n, err := s.f.Write(data)
	s.size += int64(n)
	metrics.SinkSizeBytes.Set(float64(s.size))
	if err != nil {
		metrics.SinkWriteErrors.Inc()
		return fmt.Errorf("sink: append %s: %w: %w", s.path, ErrWrite, err)
	}
	return nil
}

// HealthCheck verifies the active file path is writable by performing a
// zero-byte append-mode open.
func (s *Sink) HealthCheck() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("sink: %s not writable: %w", s.path, err)
	}
	return f.Close()
}

// Stats describes the on-disk state of the sink.
type Stats struct {
	Size         int64
	RotatedFiles int
}

// Stats reports the active file size and the number of rotated backups
// found by pattern match against the base path.
func (s *Sink) Stats() (Stats, error) {
	var st Stats

	info, err := os.Stat(s.path)
	switch {
	case err == nil:
		st.Size = info.Size()
	case !os.IsNotExist(err):
		return st, fmt.Errorf("sink: stat %s: %w", s.path, err)
	}

	rotated, err := filepath.Glob(s.path + ".*")
	if err != nil {
		return st, fmt.Errorf("sink: glob %s.*: %w", s.path, err)
	}
	st.RotatedFiles = len(rotated)
	return st, nil
}

// Close closes the active file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

func (s *Sink) openFile() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("sink: open %s: %w", s.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("sink: stat %s: %w", s.path, err)
	}
	s.f = f
	s.size = info.Size()
	return nil
}

// rotate closes the current file, shifts the backup chain up by one index
// (dropping the entry past backupCount), renames the current file to
// {path}.1 and opens a fresh file. With backupCount 0 the current file is
// removed instead of renamed.
func (s *Sink) rotate() error {
	if err := s.f.Close(); err != nil {
		return err
	}

	if s.backupCount > 0 {
		for i := s.backupCount - 1; i >= 1; i-- {
			from := fmt.Sprintf("%s.%d", s.path, i)
			to := fmt.Sprintf("%s.%d", s.path, i+1)
			os.Rename(from, to) // ignore errors, backup may not exist
		}
		if err := os.Rename(s.path, s.path+".1"); err != nil {
			return err
		}
	} else {
		if err := os.Remove(s.path); err != nil {
			return err
		}
	}

	return s.openFile()
}
