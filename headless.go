package main

import (
    "bufio"
    "context"
    "fmt"
    "io"
    "strings"
)

// waiter is the part of PlaybackSession the headless loop needs.
type waiter interface {
    TryStart(word string) bool
    Wait(ctx context.Context) error
    LastError() error
    Closed() bool
}

// runHeadless plays one word per input line, waiting for each to finish
// before reading the next.  Lines longer than maxLen are truncated the same
// way the text field limits input.  It returns when the input ends, the
// session stops accepting words or ctx is cancelled.
func runHeadless(ctx context.Context, session waiter, in io.Reader, out io.Writer, maxLen int) error {
    lines := make(chan string)
    var scanErr error
    // The reader goroutine may stay blocked on in after ctx is cancelled;
    // it exits with the process.
    go func() {
        defer close(lines)
        scanner := bufio.NewScanner(in)
        for scanner.Scan() {
            select {
            case lines <- scanner.Text():
            case <-ctx.Done():
                return
            }
        }
        scanErr = scanner.Err()
    }()

    for {
        var line string
        select {
        case <-ctx.Done():
            return ctx.Err()
        case l, ok := <-lines:
            if !ok {
                return scanErr
            }
            line = l
        }

        word := strings.ToLower(strings.TrimSpace(line))
        if r := []rune(word); len(r) > maxLen {
            word = string(r[:maxLen])
        }
        if !session.TryStart(word) {
            if session.Closed() {
                fmt.Fprintf(out, "session closed, ignored %q\n", word)
                return nil
            }
            fmt.Fprintf(out, "busy, ignored %q\n", word)
            continue
        }
        if err := session.Wait(ctx); err != nil {
            return err
        }
        if err := session.LastError(); err != nil {
            fmt.Fprintf(out, "%q failed: %v\n", word, err)
            continue
        }
        fmt.Fprintf(out, "played %q\n", word)
    }
}
