package main

import (
    "fmt"
    "time"
    "unicode"

    "github.com/samber/lo"
)

// letterGapUnits is added after each valid letter.  Together with the one
// unit gap after the last symbol it makes the standard three unit gap.
const letterGapUnits = 2

// alternation selects the LED for the next valid letter.
type alternation struct {
    primary bool
}

func (a *alternation) channel() Channel {
    return lo.Ternary(a.primary, ChannelPrimary, ChannelSecondary)
}

func (a *alternation) flip() { a.primary = !a.primary }

// Player encodes a word and drives the pulse generator letter by letter.
type Player struct {
    pulses *PulseGenerator
    pins   PinMap
    clock  Clock
    unit   time.Duration
}

func NewPlayer(backend Backend, clock Clock, pins PinMap, unit time.Duration) *Player {
    if clock == nil {
        clock = realClock{}
    }
    return &Player{
        pulses: NewPulseGenerator(backend, clock, unit),
        pins:   pins,
        clock:  clock,
        unit:   unit,
    }
}

// Play blinks word from left to right.  Valid letters alternate between the
// primary and secondary LEDs starting from alt; characters without a code
// flash the invalid LED and leave alt as it was.  A backend error aborts the
// rest of the word and is returned.
func (p *Player) Play(word string, alt *alternation) error {
    pos := 0
    for _, r := range word {
        pos++
        r = unicode.ToLower(r)
        seq, ok := Lookup(r)
        if !ok {
            if err := p.pulses.EmitInvalid(p.pins.Invalid); err != nil {
                return fmt.Errorf("letter %d (%q): %w", pos, r, err)
            }
            continue
        }
        ch := alt.channel()
        if err := p.pulses.Emit(p.pins.Pin(ch), seq); err != nil {
            return fmt.Errorf("letter %d (%q) on %s: %w", pos, r, ch, err)
        }
        alt.flip()
        p.clock.Sleep(letterGapUnits * p.unit)
    }
    return nil
}

// PlannedDuration is the time Play takes for word when nothing fails.
func (p *Player) PlannedDuration(word string) time.Duration {
    return wordDuration(word, p.unit)
}

func wordDuration(word string, unit time.Duration) time.Duration {
    return lo.SumBy([]rune(word), func(r rune) time.Duration {
        seq, ok := Lookup(unicode.ToLower(r))
        if !ok {
            return 2 * unit
        }
        return lo.SumBy(seq, func(s Symbol) time.Duration {
            return s.Duration(unit) + unit
        }) + letterGapUnits*unit
    })
}
