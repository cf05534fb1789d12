package main

import (
    "bytes"
    "errors"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestInitAlertHandlers(t *testing.T) {
    tests := []struct {
        name   string
        alerts []AlertConfig
        want   []string
    }{
        {"none defaults to log", nil, []string{"log"}},
        {"log only", []AlertConfig{{Type: "log"}}, []string{"log"}},
        {"log and notify", []AlertConfig{{Type: "log"}, {Type: "notify"}}, []string{"log", "notify"}},
    }
    for _, tt := range tests {
        handlers := initAlertHandlers(Config{Alerts: tt.alerts})
        var got []string
        for _, h := range handlers {
            got = append(got, h.Name())
        }
        if strings.Join(got, ",") != strings.Join(tt.want, ",") {
            t.Errorf("%s: handlers = %v, want %v", tt.name, got, tt.want)
        }
    }
}

func TestLogAlert_WritesEvent(t *testing.T) {
    var buf bytes.Buffer
    logger := NewEventLogger("", &buf)
    f := PlaybackFailure{ID: "id-1", Word: "sos", Err: errBoom}
    if err := (LogAlert{}).Send(f, logger); err != nil {
        t.Fatalf("Send error: %v", err)
    }
    line := buf.String()
    for _, want := range []string{"alert", "id-1", `"sos"`, "boom"} {
        if !strings.Contains(line, want) {
            t.Errorf("log line %q missing %q", line, want)
        }
    }
}

func TestNotifyAlert_Send(t *testing.T) {
    var gotTitle, gotMsg string
    n := NotifyAlert{notify: func(title, message string) error {
        gotTitle, gotMsg = title, message
        return nil
    }}
    f := PlaybackFailure{ID: "id-2", Word: "hi", Err: errBoom}
    if err := n.Send(f, NewEventLogger("", nil)); err != nil {
        t.Fatalf("Send error: %v", err)
    }
    if gotTitle != "Morse Code Machine" {
        t.Errorf("title = %q, want default", gotTitle)
    }
    if !strings.Contains(gotMsg, `"hi"`) || !strings.Contains(gotMsg, "boom") {
        t.Errorf("message = %q", gotMsg)
    }

    failing := NotifyAlert{Title: "pi", notify: func(string, string) error { return errBoom }}
    if err := failing.Send(f, NewEventLogger("", nil)); !errors.Is(err, errBoom) {
        t.Errorf("Send error = %v, want errBoom", err)
    }
}

func TestEventLogger_AppendsToFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "events.log")
    logger := NewEventLogger(path, nil)
    logger.Log("playback", "start word=%q", "sos")
    logger.Log("config", "reloaded")

    data, err := os.ReadFile(path)
    if err != nil {
        t.Fatalf("read log: %v", err)
    }
    lines := strings.Split(strings.TrimSpace(string(data)), "\n")
    if len(lines) != 2 {
        t.Fatalf("got %d lines, want 2: %q", len(lines), data)
    }
    if !strings.Contains(lines[0], "playback   start word=\"sos\"") {
        t.Errorf("first line = %q", lines[0])
    }
    if !strings.HasPrefix(lines[1], "[") || !strings.Contains(lines[1], "config") {
        t.Errorf("second line = %q", lines[1])
    }
}
