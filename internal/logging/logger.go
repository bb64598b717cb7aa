package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout free for the simulation UI and NDJSON
// streams). It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(textHandler(os.Stderr, level))
}

// NewTee creates a logger that keeps the human-readable stream on Stderr
// and mirrors every record as JSON into sink, typically a log file.
func NewTee(level slog.Level, sink io.Writer) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		textHandler(os.Stderr, level),
		slog.NewJSONHandler(sink, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: standardizeKeys,
		}),
	))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: standardizeKeys,
	})
}

// standardizeKeys renames 'error' to 'err' so records stay grep-friendly.
func standardizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
