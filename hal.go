package main

// This file defines the hardware abstraction layer (HAL) for the LED pins.
// The "sim" backend lives here so that the player can run on a desktop
// machine without Raspberry Pi hardware.  The real backend is in hal_rpi.go
// and is only built for Linux on ARM; other builds get the stub in
// hal_stub.go, which reports ErrGPIOUnavailable.

import (
    "errors"
    "fmt"
    "sort"
    "sync"
)

var (
    ErrGPIOUnavailable  = errors.New("gpio backend not available in this build")
    ErrPinNotConfigured = errors.New("pin not configured as output")
    ErrUnknownPin       = errors.New("unknown pin")
)

// Backend drives output pins.  Pins are addressed by their BCM numbers and
// must be configured as outputs before they are written.  Cleanup drives
// every configured pin low and releases it; it is called once at shutdown.
type Backend interface {
    ConfigureOutput(pin int) error
    SetHigh(pin int) error
    SetLow(pin int) error
    Cleanup() error
}

// newBackend constructs the backend named in the configuration.
func newBackend(name string) (Backend, error) {
    switch name {
    case "sim":
        return newSimBackend(), nil
    case "gpio":
        return newHardwareBackend()
    default:
        return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, name)
    }
}

// configureOutputs sets every pin as an output, stopping at the first error.
func configureOutputs(b Backend, pins []int) error {
    for _, pin := range pins {
        if err := b.ConfigureOutput(pin); err != nil {
            return fmt.Errorf("configure pin %d: %w", pin, err)
        }
    }
    return nil
}

// simBackend keeps pin levels in memory.  It is safe for concurrent use.
type simBackend struct {
    mu     sync.Mutex
    levels map[int]bool
}

func newSimBackend() *simBackend {
    return &simBackend{levels: make(map[int]bool)}
}

func (s *simBackend) ConfigureOutput(pin int) error {
    if pin < 0 {
        return fmt.Errorf("%w: %d", ErrUnknownPin, pin)
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    s.levels[pin] = false
    return nil
}

func (s *simBackend) SetHigh(pin int) error { return s.set(pin, true) }

func (s *simBackend) SetLow(pin int) error { return s.set(pin, false) }

func (s *simBackend) set(pin int, level bool) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.levels[pin]; !ok {
        return fmt.Errorf("%w: %d", ErrPinNotConfigured, pin)
    }
    s.levels[pin] = level
    return nil
}

// Cleanup forgets every pin.  Writes after Cleanup fail.
func (s *simBackend) Cleanup() error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.levels = make(map[int]bool)
    return nil
}

// pins returns the configured pins in ascending order.
func (s *simBackend) pins() []int {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]int, 0, len(s.levels))
    for pin := range s.levels {
        out = append(out, pin)
    }
    sort.Ints(out)
    return out
}
