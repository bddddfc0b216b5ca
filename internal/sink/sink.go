// Package sink defines the diagnostic channel the foreign client layer
// writes to.
//
// A foreign client is never constructed without a sink: the native layer is
// allowed to emit a diagnostic at any time, and an absent receiver turns a
// harmless warning into a crash. Callers that do not care still get a
// concrete default, never a no-op placeholder.
package sink

import (
	"fmt"
	"os"

	"github.com/yanun0323/logs"
)

// Level is the severity of a diagnostic message.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Sink receives diagnostics from the foreign client layer.
// Implementations must not fail and must be safe for concurrent use.
type Sink interface {
	Emit(level Level, message string)
}

// OrDefault returns s, or the default sink when s is nil.
func OrDefault(s Sink) Sink {
	if s == nil {
		return Default()
	}
	return s
}

// Default returns the process-wide logger-backed sink.
func Default() Sink {
	return logsSink{}
}

type logsSink struct{}

func (logsSink) Emit(level Level, message string) {
	switch level {
	case LevelDebug:
		logs.Debugf("foreign client: %s", message)
	case LevelWarning:
		logs.Warnf("foreign client: %s", message)
	case LevelError:
		logs.Errorf("foreign client: %s", message)
	default:
		logs.Infof("foreign client: %s", message)
	}
}

// Stderr returns a sink writing directly to stderr, filtered to messages at
// or above min.
func Stderr(min Level) Sink {
	return stderrSink{min: min}
}

type stderrSink struct {
	min Level
}

func (s stderrSink) Emit(level Level, message string) {
	if level < s.min {
		return
	}
	fmt.Fprintf(os.Stderr, "[marketwire %s] %s\n", level, message)
}
