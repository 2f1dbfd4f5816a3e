package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger from a level name.
// Debug always wins over the configured level.
func NewLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return logging.NewNop()
	}
	return logging.New(l)
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// ParsePath parses a slash separated row path such as "0/1/2".
// The empty path and "/" address the invisible root.
func ParsePath(s string) ([]int, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	path := make([]int, len(parts))
	for i, p := range parts {
		row, err := strconv.Atoi(p)
		if err != nil || row < 0 {
			return nil, fmt.Errorf("path %q: bad row %q: %w", s, p, domain.ErrInvalidIndex)
		}
		path[i] = row
	}
	return path, nil
}

// FormatPath is the inverse of ParsePath.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, row := range path {
		parts[i] = strconv.Itoa(row)
	}
	return "/" + strings.Join(parts, "/")
}

// Resolve turns a path argument into an index of m.
func Resolve(m *model.Model, s string) (model.Index, error) {
	path, err := ParsePath(s)
	if err != nil {
		return model.Index{}, err
	}
	return m.IndexForPath(path)
}
