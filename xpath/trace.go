package xpath

import (
	"io"
	"log/slog"
	"os"
)

// Tracer receives compile events, one Enter/Leave pair per grammar
// rule. The zero tracer discards everything.
type Tracer interface {
	Enter(string)
	Leave(string)
}

type discardTracer struct{}

func (_ discardTracer) Enter(_ string) {}

func (_ discardTracer) Leave(_ string) {}

type stdioTracer struct {
	logger *slog.Logger
	depth  int
}

func TraceStdout() Tracer {
	tracer := stdioTracer{
		logger: stdioLogger(os.Stdout),
	}
	return &tracer
}

func TraceStderr() Tracer {
	tracer := stdioTracer{
		logger: stdioLogger(os.Stderr),
	}
	return &tracer
}

func stdioLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func (t *stdioTracer) Enter(rule string) {
	t.depth++
	args := []any{
		"rule",
		rule,
		"depth",
		t.depth,
	}
	t.logger.Debug("start compile expr", args...)
}

func (t *stdioTracer) Leave(rule string) {
	args := []any{
		"rule",
		rule,
		"depth",
		t.depth,
	}
	t.logger.Debug("done compile expr", args...)
	t.depth--
}
