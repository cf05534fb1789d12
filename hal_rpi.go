//go:build linux && (arm || arm64) && !disablegpio

// This file provides the Raspberry Pi backend using the periph.io library.
// When cross‑compiling on other platforms or when the build tag
// "disablegpio" is specified, hal_stub.go is used instead.

package main

import (
    "errors"
    "fmt"
    "sync"

    // Use the new periph module layout.  See https://periph.io/news/2020/a_new_start/
    "periph.io/x/conn/v3/gpio"
    "periph.io/x/conn/v3/gpio/gpioreg"
    "periph.io/x/host/v3"
)

// periphBackend drives pins through periph.io.  Pins are looked up by their
// BCM names ("GPIO17") once, in ConfigureOutput.
type periphBackend struct {
    mu   sync.Mutex
    pins map[int]gpio.PinIO
}

// newHardwareBackend initialises periph host state.  Returning an error here
// prevents the player from starting.
func newHardwareBackend() (Backend, error) {
    if _, err := host.Init(); err != nil {
        return nil, fmt.Errorf("periph host init: %w", err)
    }
    return &periphBackend{pins: make(map[int]gpio.PinIO)}, nil
}

func (b *periphBackend) ConfigureOutput(pin int) error {
    p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
    if p == nil {
        return fmt.Errorf("%w: GPIO%d", ErrUnknownPin, pin)
    }
    // Out both sets the direction and the initial level.
    if err := p.Out(gpio.Low); err != nil {
        return err
    }
    b.mu.Lock()
    b.pins[pin] = p
    b.mu.Unlock()
    return nil
}

func (b *periphBackend) SetHigh(pin int) error { return b.out(pin, gpio.High) }

func (b *periphBackend) SetLow(pin int) error { return b.out(pin, gpio.Low) }

func (b *periphBackend) out(pin int, level gpio.Level) error {
    b.mu.Lock()
    p, ok := b.pins[pin]
    b.mu.Unlock()
    if !ok {
        return fmt.Errorf("%w: %d", ErrPinNotConfigured, pin)
    }
    return p.Out(level)
}

// Cleanup turns every LED off and halts the pins.  All pins are attempted
// even if one fails.
func (b *periphBackend) Cleanup() error {
    b.mu.Lock()
    defer b.mu.Unlock()
    var errs []error
    for pin, p := range b.pins {
        if err := p.Out(gpio.Low); err != nil {
            errs = append(errs, fmt.Errorf("GPIO%d low: %w", pin, err))
        }
        if err := p.Halt(); err != nil {
            errs = append(errs, fmt.Errorf("GPIO%d halt: %w", pin, err))
        }
    }
    b.pins = make(map[int]gpio.PinIO)
    return errors.Join(errs...)
}
