package main

import (
    "fmt"
    "io"
    "os"
    "sync"
    "time"
)

// EventLogger writes timestamped, categorised events to a file.  It is safe
// for concurrent use: the playback worker and the UI both log through it.
type EventLogger struct {
    filePath string
    fallback io.Writer
    mu       sync.Mutex
}

// NewEventLogger creates a logger appending to filePath.  When filePath is
// empty, lines go to fallback instead, and a nil fallback discards them.
func NewEventLogger(filePath string, fallback io.Writer) *EventLogger {
    if fallback == nil {
        fallback = io.Discard
    }
    return &EventLogger{filePath: filePath, fallback: fallback}
}

// Log writes a single event.  The category is padded so lines line up when
// tailing the file.  Errors are printed to standard error and otherwise ignored.
func (el *EventLogger) Log(category, format string, args ...any) {
    el.mu.Lock()
    defer el.mu.Unlock()
    msg := fmt.Sprintf(format, args...)
    ts := time.Now().Format(time.RFC3339)
    line := fmt.Sprintf("[%s] %-10s %s\n", ts, category, msg)
    if el.filePath == "" {
        _, _ = io.WriteString(el.fallback, line)
        return
    }
    // Open file in append mode, create if not exists
    f, err := os.OpenFile(el.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
    if err != nil {
        fmt.Fprintf(os.Stderr, "log error: %v\n", err)
        return
    }
    defer f.Close()
    if _, err := f.WriteString(line); err != nil {
        fmt.Fprintf(os.Stderr, "log write error: %v\n", err)
    }
}
