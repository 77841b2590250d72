package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// WriterLogger writes log lines to an io.Writer, dropping entries below minLevel.
//
// Text format:  [2006-01-02T15:04:05Z] [run-id] INFO: message key=value ...
// JSON format:  {"time":..., "scope":..., "level":..., "message":..., "metadata":{...}}
type WriterLogger struct {
	mu       sync.Mutex
	out      io.Writer
	scope    string
	minLevel int
	json     bool
	clock    shared.Clock
}

// NewWriterLogger creates a logger. level is one of debug/info/warn/error
// (case-insensitive, unknown values mean info); format is "text" or "json".
func NewWriterLogger(out io.Writer, level, format string, clock shared.Clock) *WriterLogger {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &WriterLogger{
		out:      out,
		minLevel: rank,
		json:     strings.EqualFold(format, "json"),
		clock:    clock,
	}
}

// WithScope returns a logger sharing the same writer that tags lines with scope
// (typically the query run id)
func (l *WriterLogger) WithScope(scope string) *WriterLogger {
	return &WriterLogger{
		out:      l.out,
		scope:    scope,
		minLevel: l.minLevel,
		json:     l.json,
		clock:    l.clock,
	}
}

// Log implements ContainerLogger
func (l *WriterLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank, ok := levelRank[level]; ok && rank < l.minLevel {
		return
	}

	now := l.clock.Now().Format(time.RFC3339)

	var line string
	if l.json {
		payload, err := json.Marshal(struct {
			Time     string                 `json:"time"`
			Scope    string                 `json:"scope,omitempty"`
			Level    string                 `json:"level"`
			Message  string                 `json:"message"`
			Metadata map[string]interface{} `json:"metadata,omitempty"`
		}{now, l.scope, level, message, metadata})
		if err != nil {
			return
		}
		line = string(payload) + "\n"
	} else {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] ", now)
		if l.scope != "" {
			fmt.Fprintf(&b, "[%s] ", l.scope)
		}
		fmt.Fprintf(&b, "%s: %s", level, message)
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, metadata[k])
		}
		b.WriteString("\n")
		line = b.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line)
}
