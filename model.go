package main

import (
    "strings"
    "time"
)

// Symbol is one element of Morse code: a dot or a dash.
type Symbol int

const (
    SymbolDot Symbol = iota
    SymbolDash
)

// Duration returns how long the LED stays lit for the symbol.  A dot lasts
// one unit and a dash three units, whatever the unit is.
func (s Symbol) Duration(unit time.Duration) time.Duration {
    if s == SymbolDash {
        return 3 * unit
    }
    return unit
}

func (s Symbol) String() string {
    if s == SymbolDash {
        return "-"
    }
    return "."
}

// CodeSequence is the ordered list of symbols for one character.  Sequences
// handed out by the table are shared, so callers must not modify them.
type CodeSequence []Symbol

func (c CodeSequence) String() string {
    var b strings.Builder
    for _, s := range c {
        b.WriteString(s.String())
    }
    return b.String()
}

// Channel is a logical LED role.  Primary and Secondary alternate per letter;
// Invalid only lights for characters that have no code.
type Channel int

const (
    ChannelPrimary Channel = iota
    ChannelSecondary
    ChannelInvalid
)

func (c Channel) String() string {
    switch c {
    case ChannelPrimary:
        return "primary"
    case ChannelSecondary:
        return "secondary"
    case ChannelInvalid:
        return "invalid"
    default:
        return "unknown"
    }
}

// PlaybackState is either idle or running.  There is one per session.
type PlaybackState int

const (
    StateIdle PlaybackState = iota
    StateRunning
)

func (s PlaybackState) String() string {
    if s == StateRunning {
        return "running"
    }
    return "idle"
}

// PinMap binds each channel to a GPIO pin (BCM numbering).  The defaults
// are header pins 11, 13 and 15: red, green and blue LEDs.
type PinMap struct {
    Primary   int `json:"primary"`   // red LED
    Secondary int `json:"secondary"` // green LED
    Invalid   int `json:"invalid"`   // blue LED
}

// Pin returns the pin bound to the channel.
func (p PinMap) Pin(c Channel) int {
    switch c {
    case ChannelPrimary:
        return p.Primary
    case ChannelSecondary:
        return p.Secondary
    default:
        return p.Invalid
    }
}

// All returns the pins in channel order.
func (p PinMap) All() []int {
    return []int{p.Primary, p.Secondary, p.Invalid}
}

// SidetoneConfig controls the optional audio tone played while an LED is lit.
type SidetoneConfig struct {
    Enabled   bool    `json:"enabled"`
    Frequency float64 `json:"frequency"` // Hz
}

// AlertConfig selects a handler that is told about failed playbacks.
// Supported types are "log" and "notify" (desktop notification).
type AlertConfig struct {
    Type  string `json:"type"`
    Title string `json:"title,omitempty"` // notification title, "Morse Code Machine" if empty
}

// Config is the top-level structure read from config.json.  It is never
// written back by the program.
type Config struct {
    Backend       string         `json:"backend"`         // "sim" or "gpio"
    UnitMillis    int            `json:"unit_ms"`         // length of one Morse unit
    MaxWordLength int            `json:"max_word_length"` // input limit in the UI
    Pins          PinMap         `json:"pins"`
    LogFile       string         `json:"log_file"`
    Sidetone      SidetoneConfig `json:"sidetone"`
    Alerts        []AlertConfig  `json:"alerts"`
}

// Unit returns the configured unit time.
func (c Config) Unit() time.Duration {
    return time.Duration(c.UnitMillis) * time.Millisecond
}
