package main

// This file defines pluggable handlers told about playbacks that failed
// part way, usually because a GPIO write returned an error.

import (
    "fmt"
    "strings"

    "github.com/gen2brain/beeep"
)

// PlaybackFailure describes a word whose playback was aborted.
type PlaybackFailure struct {
    ID   string // playback id, as written to the event log
    Word string
    Err  error
}

// AlertHandler represents a mechanism that reports a failed playback.  The
// Send method receives the failure and a logger to record any diagnostics.
// If an error is returned, the caller logs it and carries on.
type AlertHandler interface {
    Name() string
    Send(f PlaybackFailure, logger *EventLogger) error
}

// alertTypes lists the accepted values of AlertConfig.Type.
var alertTypes = map[string]struct{}{
    "log":    {},
    "notify": {},
}

// LogAlert writes the failure to the event logger.  This is the default
// handler if no other alerts are configured.
type LogAlert struct{}

// Name returns the type name of the alert handler.
func (LogAlert) Name() string { return "log" }

// Send writes an alert to the event log.
func (LogAlert) Send(f PlaybackFailure, logger *EventLogger) error {
    logger.Log("alert", "playback %s of %q aborted: %v", f.ID, f.Word, f.Err)
    return nil
}

// NotifyAlert raises a desktop notification.  It is useful when the player
// runs on a Pi with a desktop session attached.
type NotifyAlert struct {
    Title string
    // notify defaults to beeep.Notify; tests replace it.
    notify func(title, message string) error
}

// Name returns the type name of the alert handler.
func (NotifyAlert) Name() string { return "notify" }

// Send shows a notification naming the word and the error.
func (n NotifyAlert) Send(f PlaybackFailure, logger *EventLogger) error {
    title := n.Title
    if title == "" {
        title = "Morse Code Machine"
    }
    notify := n.notify
    if notify == nil {
        notify = func(title, message string) error {
            return beeep.Notify(title, message, "")
        }
    }
    msg := fmt.Sprintf("Playback of %q stopped: %v", f.Word, f.Err)
    if err := notify(title, msg); err != nil {
        return fmt.Errorf("desktop notification: %w", err)
    }
    return nil
}

// initAlertHandlers constructs a slice of AlertHandler instances from the
// provided configuration.  If cfg.Alerts is empty, a single LogAlert is
// returned so that failures are always recorded.
func initAlertHandlers(cfg Config) []AlertHandler {
    var handlers []AlertHandler
    for _, ac := range cfg.Alerts {
        switch strings.ToLower(ac.Type) {
        case "log":
            handlers = append(handlers, LogAlert{})
        case "notify":
            handlers = append(handlers, NotifyAlert{Title: ac.Title})
        }
    }
    if len(handlers) == 0 {
        handlers = append(handlers, LogAlert{})
    }
    return handlers
}
