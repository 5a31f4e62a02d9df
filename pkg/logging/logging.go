package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEntry is the structured log entry delivered to the dashboard.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

var (
	defaultLogger *slog.Logger

	channelMu     sync.Mutex
	entryChannel  chan LogEntry
	channelMode   bool
	channelClosed bool
)

const channelBufferSize = 2048

// InitForCLI routes log entries to a slog text handler on the given writer.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	opts := &slog.HandlerOptions{Level: filterLevel.SlogLevel()}
	defaultLogger = slog.New(slog.NewTextHandler(output, opts))
	slog.SetDefault(defaultLogger)

	channelMu.Lock()
	channelMode = false
	channelMu.Unlock()
}

// InitForDashboard routes log entries to a buffered channel consumed by the
// dashboard instead of writing them to the terminal, which the TUI owns.
// Entries logged outside the channel's lifetime fall back to a text handler
// on stderr.
func InitForDashboard(filterLevel LogLevel) <-chan LogEntry {
	opts := &slog.HandlerOptions{Level: filterLevel.SlogLevel()}
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, opts))

	ch := make(chan LogEntry, channelBufferSize)
	channelMu.Lock()
	entryChannel = ch
	channelMode = true
	channelClosed = false
	channelMu.Unlock()
	return ch
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	if sendToChannel(level, subsystem, err, msg) {
		return
	}

	if defaultLogger == nil {
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", time.Now().Format(time.RFC3339), level, subsystem, msg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		}
		return
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// sendToChannel delivers one entry to the dashboard channel. It reports
// false when channel mode is off, the channel was closed or never made, or
// the buffer is full; the caller then writes through the text handler, so a
// late entry during teardown still shows up instead of panicking the sender.
func sendToChannel(level LogLevel, subsystem string, err error, msg string) bool {
	channelMu.Lock()
	defer channelMu.Unlock()

	if !channelMode || channelClosed || entryChannel == nil {
		return false
	}
	select {
	case entryChannel <- LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Subsystem: subsystem,
		Message:   msg,
		Err:       err,
	}:
		return true
	default:
		// A full buffer means the dashboard stopped draining.
		return false
	}
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// CloseChannel closes the dashboard log channel on shutdown. Calling it
// again is a no-op, and entries logged afterwards go to the text handler.
func CloseChannel() {
	channelMu.Lock()
	defer channelMu.Unlock()
	if entryChannel != nil && !channelClosed {
		close(entryChannel)
		channelClosed = true
	}
}
