//go:build (linux && cgo) || windows || darwin

package main

import (
    "fmt"
    "math"
    "sync"
    "sync/atomic"
    "time"

    "github.com/gopxl/beep/v2"
    "github.com/gopxl/beep/v2/speaker"
)

const sidetoneSampleRate = beep.SampleRate(44100)

// sidetone wraps a Backend and plays a tone while any LED is lit.  The
// speaker streams continuously; the tone is gated by the number of pins
// currently high.
type sidetone struct {
    Backend
    mu     sync.Mutex
    high   map[int]bool
    stream *gatedTone
}

// newSidetone initialises the speaker and starts a silent stream.
func newSidetone(b Backend, frequency float64, logger *EventLogger) (Backend, error) {
    if frequency <= 0 {
        frequency = 700
    }
    if err := speaker.Init(sidetoneSampleRate, sidetoneSampleRate.N(time.Second/20)); err != nil {
        return nil, fmt.Errorf("speaker init: %w", err)
    }
    stream := &gatedTone{frequency: frequency}
    speaker.Play(stream)
    logger.Log("sidetone", "enabled at %.0f Hz", frequency)
    return &sidetone{Backend: b, high: make(map[int]bool), stream: stream}, nil
}

func (s *sidetone) SetHigh(pin int) error {
    if err := s.Backend.SetHigh(pin); err != nil {
        return err
    }
    s.gate(pin, true)
    return nil
}

func (s *sidetone) SetLow(pin int) error {
    err := s.Backend.SetLow(pin)
    // Silence even on failure so a broken pin does not leave a tone running.
    s.gate(pin, false)
    return err
}

func (s *sidetone) gate(pin int, on bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if on {
        s.high[pin] = true
    } else {
        delete(s.high, pin)
    }
    s.stream.on.Store(len(s.high) > 0)
}

func (s *sidetone) Cleanup() error {
    s.stream.on.Store(false)
    speaker.Close()
    return s.Backend.Cleanup()
}

// gatedTone is an endless sine stream that outputs silence while off.
type gatedTone struct {
    on        atomic.Bool
    frequency float64
    position  int
}

func (t *gatedTone) Stream(samples [][2]float64) (n int, ok bool) {
    for i := range samples {
        value := 0.0
        if t.on.Load() {
            phase := 2 * math.Pi * t.frequency * float64(t.position) / float64(sidetoneSampleRate)
            value = math.Sin(phase) * 0.5 // 50% volume
            t.position++
        } else {
            t.position = 0
        }
        samples[i][0] = value
        samples[i][1] = value
    }
    return len(samples), true
}

func (t *gatedTone) Err() error {
    return nil
}
