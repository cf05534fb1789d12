package main

import (
    "fmt"
    "time"
)

// Clock is how the pulse generator waits.  The real clock sleeps; tests use
// a virtual one so timing can be asserted exactly.
type Clock interface {
    Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// PulseGenerator turns symbols into timed on/off pulses on a single pin.
// Every call blocks for the full length of the pulses it emits, so it must
// only be used from the playback worker.
type PulseGenerator struct {
    backend Backend
    clock   Clock
    unit    time.Duration
}

func NewPulseGenerator(backend Backend, clock Clock, unit time.Duration) *PulseGenerator {
    if clock == nil {
        clock = realClock{}
    }
    return &PulseGenerator{backend: backend, clock: clock, unit: unit}
}

// Emit lights the pin for each symbol in turn (one unit for a dot, three for
// a dash) followed by a one unit gap.  The first backend error aborts.
func (g *PulseGenerator) Emit(pin int, seq CodeSequence) error {
    for _, s := range seq {
        if err := g.pulse(pin, s.Duration(g.unit)); err != nil {
            return err
        }
    }
    return nil
}

// EmitInvalid flashes the pin once for one unit, then waits one unit.
func (g *PulseGenerator) EmitInvalid(pin int) error {
    return g.pulse(pin, g.unit)
}

func (g *PulseGenerator) pulse(pin int, on time.Duration) error {
    if err := g.backend.SetHigh(pin); err != nil {
        return fmt.Errorf("set pin %d high: %w", pin, err)
    }
    g.clock.Sleep(on)
    if err := g.backend.SetLow(pin); err != nil {
        return fmt.Errorf("set pin %d low: %w", pin, err)
    }
    g.clock.Sleep(g.unit)
    return nil
}
