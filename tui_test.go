package main

import (
    "strings"
    "testing"
    "time"

    tea "github.com/charmbracelet/bubbletea"
)

type fakeStarter struct {
    busy    bool
    state   PlaybackState
    lastErr error
    started []string
}

func (f *fakeStarter) TryStart(word string) bool {
    if f.busy {
        return false
    }
    f.started = append(f.started, word)
    f.state = StateRunning
    return true
}

func (f *fakeStarter) State() PlaybackState { return f.state }
func (f *fakeStarter) LastError() error     { return f.lastErr }
func (f *fakeStarter) Unit() time.Duration  { return testUnit }

type fakeLEDs map[int]bool

func (f fakeLEDs) Level(pin int) bool { return f[pin] }

func update(t *testing.T, m model, msg tea.Msg) model {
    t.Helper()
    next, _ := m.Update(msg)
    return next.(model)
}

func typeText(t *testing.T, m model, s string) model {
    t.Helper()
    return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModel_EnterStartsLowercasedWord(t *testing.T) {
    s := &fakeStarter{}
    m := newModel(s, fakeLEDs{}, testPins, 12)

    m = typeText(t, m, "SoS")
    m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

    if len(s.started) != 1 || s.started[0] != "sos" {
        t.Fatalf("started = %v, want [sos]", s.started)
    }
    if !strings.Contains(m.status, `playing "sos"`) {
        t.Errorf("status = %q", m.status)
    }
}

func TestModel_InputIsCappedAtMaxLength(t *testing.T) {
    m := newModel(&fakeStarter{}, fakeLEDs{}, testPins, 12)
    m = typeText(t, m, "abcdefghij")
    m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
    m = typeText(t, m, "xyz")
    if m.input != "abcdefghij x" {
        t.Errorf("input = %q, want %q", m.input, "abcdefghij x")
    }

    m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
    if m.input != "abcdefghij " {
        t.Errorf("after backspace input = %q", m.input)
    }
    m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
    if m.input != "" {
        t.Errorf("after ctrl+u input = %q", m.input)
    }
}

func TestModel_BusySessionDropsRequest(t *testing.T) {
    s := &fakeStarter{busy: true}
    m := newModel(s, fakeLEDs{}, testPins, 12)
    m = typeText(t, m, "hi")
    m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
    if len(s.started) != 0 {
        t.Fatalf("started = %v, want nothing", s.started)
    }
    if m.status != `busy, ignored "hi"` {
        t.Errorf("status = %q", m.status)
    }
}

func TestModel_TickReportsCompletion(t *testing.T) {
    s := &fakeStarter{}
    m := newModel(s, fakeLEDs{}, testPins, 12)
    m = typeText(t, m, "e")
    m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

    s.state = StateIdle
    m = update(t, m, tickMsg(time.Now()))
    if m.status != "done" {
        t.Errorf("status after finish = %q, want done", m.status)
    }

    m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
    s.state = StateIdle
    s.lastErr = errBoom
    m = update(t, m, tickMsg(time.Now()))
    if !m.failed || !strings.Contains(m.status, "boom") {
        t.Errorf("status after failure = %q (failed=%v)", m.status, m.failed)
    }
}

func TestModel_ViewShowsLitLEDs(t *testing.T) {
    m := newModel(&fakeStarter{}, fakeLEDs{27: true}, testPins, 12)
    view := m.View()
    if !strings.Contains(view, "Morse Code Machine") || !strings.Contains(view, "Enter a word") {
        t.Errorf("view missing title or placeholder:\n%s", view)
    }
    if !strings.Contains(view, "● green") || !strings.Contains(view, "○ red") || !strings.Contains(view, "○ blue") {
        t.Errorf("view LEDs wrong:\n%s", view)
    }
}

func TestModel_EscQuits(t *testing.T) {
    m := newModel(&fakeStarter{}, fakeLEDs{}, testPins, 12)
    _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
    if cmd == nil {
        t.Fatal("esc returned no command")
    }
    if _, ok := cmd().(tea.QuitMsg); !ok {
        t.Error("esc did not quit")
    }
}
