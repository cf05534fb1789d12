package main

import (
    "errors"
    "sync"
    "time"
)

// fakeClock advances virtual time instead of sleeping.
type fakeClock struct {
    mu  sync.Mutex
    now time.Duration
}

func (c *fakeClock) Sleep(d time.Duration) {
    c.mu.Lock()
    c.now += d
    c.mu.Unlock()
}

func (c *fakeClock) Now() time.Duration {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.now
}

var _ Clock = (*fakeClock)(nil)

type pinEvent struct {
    pin  int
    high bool
    at   time.Duration
}

// fakeBackend records every successful write with the virtual time it
// happened at.  failHigh makes SetHigh fail for one pin; entered and release
// let a test hold the worker inside the first SetHigh.
type fakeBackend struct {
    mu         sync.Mutex
    clock      *fakeClock
    configured map[int]bool
    levels     map[int]bool
    events     []pinEvent
    failHigh   int
    entered    chan struct{}
    release    chan struct{}
    cleaned    bool
}

var errBoom = errors.New("boom")

func newFakeBackend(clock *fakeClock, pins ...int) *fakeBackend {
    b := &fakeBackend{
        clock:      clock,
        configured: make(map[int]bool),
        levels:     make(map[int]bool),
        failHigh:   -1,
    }
    for _, p := range pins {
        b.configured[p] = true
    }
    return b
}

// gate makes the next SetHigh block until release is closed.
func (b *fakeBackend) gate() {
    b.entered = make(chan struct{}, 1)
    b.release = make(chan struct{})
}

func (b *fakeBackend) ConfigureOutput(pin int) error {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.configured[pin] = true
    return nil
}

func (b *fakeBackend) SetHigh(pin int) error {
    if b.entered != nil {
        select {
        case b.entered <- struct{}{}:
        default:
        }
        <-b.release
    }
    return b.set(pin, true)
}

func (b *fakeBackend) SetLow(pin int) error { return b.set(pin, false) }

func (b *fakeBackend) set(pin int, high bool) error {
    b.mu.Lock()
    defer b.mu.Unlock()
    if !b.configured[pin] {
        return ErrPinNotConfigured
    }
    if high && pin == b.failHigh {
        return errBoom
    }
    b.levels[pin] = high
    b.events = append(b.events, pinEvent{pin: pin, high: high, at: b.clock.Now()})
    return nil
}

func (b *fakeBackend) Cleanup() error {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.cleaned = true
    return nil
}

func (b *fakeBackend) snapshot() []pinEvent {
    b.mu.Lock()
    defer b.mu.Unlock()
    return append([]pinEvent(nil), b.events...)
}

func (b *fakeBackend) reset() {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.events = nil
}

func (b *fakeBackend) level(pin int) bool {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.levels[pin]
}

var _ Backend = (*fakeBackend)(nil)

// highs returns the pins that were switched on, in order.
func highs(events []pinEvent) []int {
    var out []int
    for _, e := range events {
        if e.high {
            out = append(out, e.pin)
        }
    }
    return out
}

var testPins = PinMap{Primary: 17, Secondary: 27, Invalid: 22}

const testUnit = 100 * time.Millisecond
