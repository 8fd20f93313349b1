// Package logging initializes process-wide logging.
//
// Every entry is written to the console and, when configured,
// appended to a log file, in the same format:
//
//   [2006-01-02 15:04:05,000] - [    INFO]: message key=value
//
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/multi"
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "2006-01-02 15:04:05,000"

// Config configures logging.
type Config struct {
	// Level is the minimum level to log.
	//
	// If empty, "info" is used.
	Level string

	// File is the path of the log file.
	//
	// The file is created if needed and appended to,
	// if empty only the console receives entries.
	File string

	// Console is the console writer.
	//
	// If nil, os.Stdout is used.
	Console io.Writer
}

// New returns a new logger configured with c.
//
// The returned closer closes the log file and
// must be called once the logger is no longer used.
func New(c Config) (*log.Logger, io.Closer, error) {
	var level = log.InfoLevel
	var console = c.Console
	var closer io.Closer = nopCloser{}

	if c.Level != "" {
		l, err := log.ParseLevel(c.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	if console == nil {
		console = os.Stdout
	}

	var handlers = []log.Handler{NewHandler(console)}

	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %q - %w", c.File, err)
		}
		handlers = append(handlers, NewHandler(f))
		closer = f
	}

	return &log.Logger{
		Handler: multi.New(handlers...),
		Level:   level,
	}, closer, nil
}

// Handler writes formatted entries to a writer.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a new handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(e *log.Entry) error {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] - [%8s]: %s",
		e.Timestamp.Format(TimeFormat),
		levelName(e.Level),
		e.Message,
	)

	for _, name := range names(e.Fields) {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, b.String())
	return err
}

// Names returns the sorted field names.
func names(fields log.Fields) []string {
	var ret = make([]string, 0, len(fields))
	for name := range fields {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// LevelName returns the upper-case level name.
func levelName(l log.Level) string {
	if l == log.WarnLevel {
		return "WARNING"
	}
	return strings.ToUpper(l.String())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
