package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger writes text logs to w, or to the file at logPath when set.
// The returned closer is nil when no file was opened.
func newLogger(w io.Writer, level, logPath string) (*slog.Logger, io.Closer) {
	var closer io.Closer
	if logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			slog.New(slog.NewTextHandler(w, nil)).Warn("log file unavailable, logging to stderr", "path", logPath, "error", err)
		} else {
			w = fileWriter
			closer = file
		}
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
	return logger, closer
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a file and keeps only its newest bytes once it
// grows past maxLogSize.
type logFileWriter struct {
	file    *os.File
	maxSize int64
	keep    int64
	mu      sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{file: file, maxSize: maxLogSizeBytes, keep: keepLogSizeBytes}
	if err := writer.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, nil, err
	}
	return writer, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.truncateIfNeeded()
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxSize {
		return nil
	}

	buf := make([]byte, w.keep)
	n, err := w.file.ReadAt(buf, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end of file
	_, err = w.file.Write(buf[:n])
	return err
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
