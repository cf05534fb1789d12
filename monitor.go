package main

import "sync"

// ledMonitor wraps a Backend and remembers the last level successfully
// written to each pin, so the UI can draw the LEDs without touching hardware.
type ledMonitor struct {
    Backend
    mu     sync.RWMutex
    levels map[int]bool
}

func newLEDMonitor(b Backend) *ledMonitor {
    return &ledMonitor{Backend: b, levels: make(map[int]bool)}
}

func (m *ledMonitor) SetHigh(pin int) error {
    if err := m.Backend.SetHigh(pin); err != nil {
        return err
    }
    m.record(pin, true)
    return nil
}

func (m *ledMonitor) SetLow(pin int) error {
    if err := m.Backend.SetLow(pin); err != nil {
        return err
    }
    m.record(pin, false)
    return nil
}

func (m *ledMonitor) Cleanup() error {
    m.mu.Lock()
    m.levels = make(map[int]bool)
    m.mu.Unlock()
    return m.Backend.Cleanup()
}

func (m *ledMonitor) record(pin int, level bool) {
    m.mu.Lock()
    m.levels[pin] = level
    m.mu.Unlock()
}

// Level reports whether the pin was last driven high.
func (m *ledMonitor) Level(pin int) bool {
    m.mu.RLock()
    defer m.mu.RUnlock()
    return m.levels[pin]
}
