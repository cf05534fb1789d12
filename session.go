package main

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
)

// playback is one accepted request, handed to the worker.
type playback struct {
    id   string
    word string
    unit time.Duration
    done chan struct{}
}

// PlaybackSession plays at most one word at a time.  TryStart is called from
// the UI and never blocks; the word itself plays on a single long-lived
// worker goroutine.
type PlaybackSession struct {
    backend Backend
    clock   Clock
    pins    PinMap
    logger  *EventLogger
    alerts  []AlertHandler

    mu      sync.Mutex
    state   PlaybackState
    alt     alternation
    unit    time.Duration
    current *playback
    lastErr error
    started bool
    closed  bool

    jobs       chan *playback
    workerDone chan struct{}
}

// NewPlaybackSession builds an idle session.  Call Start before TryStart.
func NewPlaybackSession(backend Backend, clock Clock, pins PinMap, unit time.Duration, logger *EventLogger, alerts []AlertHandler) *PlaybackSession {
    if clock == nil {
        clock = realClock{}
    }
    return &PlaybackSession{
        backend:    backend,
        clock:      clock,
        pins:       pins,
        logger:     logger,
        alerts:     alerts,
        unit:       unit,
        jobs:       make(chan *playback, 1),
        workerDone: make(chan struct{}),
    }
}

// Start launches the worker.  It runs until Close is called or ctx is
// cancelled; neither interrupts a word that is already playing.
func (s *PlaybackSession) Start(ctx context.Context) {
    s.mu.Lock()
    if s.started {
        s.mu.Unlock()
        return
    }
    s.started = true
    s.mu.Unlock()
    go s.work(ctx)
}

func (s *PlaybackSession) work(ctx context.Context) {
    defer close(s.workerDone)
    for {
        // A cancelled worker never picks up another word, even if one is
        // already queued.
        if err := ctx.Err(); err != nil {
            s.abandon(err)
            return
        }
        select {
        case <-ctx.Done():
            s.abandon(ctx.Err())
            return
        case pb, ok := <-s.jobs:
            if !ok {
                return
            }
            s.run(pb)
        }
    }
}

// TryStart begins playing word if the session is idle and reports whether
// it did.  A request made while a word is playing is dropped.
func (s *PlaybackSession) TryStart(word string) bool {
    s.mu.Lock()
    if s.closed {
        s.mu.Unlock()
        s.logger.Log("playback", "dropped word=%q (closed)", word)
        return false
    }
    if s.state == StateRunning {
        s.mu.Unlock()
        s.logger.Log("playback", "dropped word=%q (busy)", word)
        return false
    }
    pb := &playback{
        id:   uuid.New().String(),
        word: word,
        unit: s.unit,
        done: make(chan struct{}),
    }
    s.state = StateRunning
    s.alt = alternation{primary: true}
    s.current = pb
    // The state check above guarantees the queue is empty.
    s.jobs <- pb
    s.mu.Unlock()
    return true
}

func (s *PlaybackSession) run(pb *playback) {
    started := time.Now()
    s.logger.Log("playback", "%s start word=%q unit=%s", pb.id, pb.word, pb.unit)
    var err error
    defer func() {
        if r := recover(); r != nil {
            err = fmt.Errorf("playback panic: %v", r)
        }
        s.finish(pb, err, time.Since(started))
    }()
    player := NewPlayer(s.backend, s.clock, s.pins, pb.unit)
    // Only the worker touches s.alt while running, so no lock is held here.
    err = player.Play(pb.word, &s.alt)
}

// abandon refuses further words after the worker is told to stop and
// releases a word that was accepted but never picked up.
func (s *PlaybackSession) abandon(cause error) {
    s.mu.Lock()
    s.closed = true
    s.mu.Unlock()
    select {
    case pb, ok := <-s.jobs:
        if ok {
            s.finish(pb, fmt.Errorf("playback abandoned: %w", cause), 0)
        }
    default:
    }
}

// finish always runs after a playback, however it ended: LEDs are turned
// off, failures reported and the session returned to idle.
func (s *PlaybackSession) finish(pb *playback, err error, took time.Duration) {
    for _, pin := range s.pins.All() {
        _ = s.backend.SetLow(pin)
    }
    if err != nil {
        s.logger.Log("playback", "%s failed after %s: %v", pb.id, took.Round(time.Millisecond), err)
        failure := PlaybackFailure{ID: pb.id, Word: pb.word, Err: err}
        for _, h := range s.alerts {
            if herr := h.Send(failure, s.logger); herr != nil {
                s.logger.Log("alert", "handler %s error: %v", h.Name(), herr)
            }
        }
    } else {
        s.logger.Log("playback", "%s done in %s", pb.id, took.Round(time.Millisecond))
    }
    s.mu.Lock()
    s.state = StateIdle
    s.lastErr = err
    s.current = nil
    close(pb.done)
    s.mu.Unlock()
}

// State returns the current playback state.
func (s *PlaybackSession) State() PlaybackState {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.state
}

// LastError returns the error of the most recent playback, nil if it
// succeeded.
func (s *PlaybackSession) LastError() error {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.lastErr
}

// Closed reports whether the session has stopped accepting words.
func (s *PlaybackSession) Closed() bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.closed
}

// SetUnit changes the unit time used by the next playback.
func (s *PlaybackSession) SetUnit(unit time.Duration) {
    s.mu.Lock()
    s.unit = unit
    s.mu.Unlock()
}

// Unit returns the unit time the next playback will use.
func (s *PlaybackSession) Unit() time.Duration {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.unit
}

// Wait blocks until the current playback, if any, has finished.
func (s *PlaybackSession) Wait(ctx context.Context) error {
    s.mu.Lock()
    pb := s.current
    s.mu.Unlock()
    if pb == nil {
        return nil
    }
    select {
    case <-pb.done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}

// Close refuses new words, lets the current one finish and stops the worker.
// It is safe to call more than once.
func (s *PlaybackSession) Close() error {
    s.mu.Lock()
    started := s.started
    if !s.closed {
        s.closed = true
        close(s.jobs)
    }
    s.mu.Unlock()
    if started {
        <-s.workerDone
    }
    return nil
}
