package main

import (
    "context"
    "fmt"
    "strings"
    "time"
    "unicode/utf8"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"
)

var (
    titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
    inputStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
    placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
    statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
    errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
    helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
    ledOffStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ledColors are the lit colours of the primary, secondary and invalid LEDs.
var ledColors = [3]lipgloss.Color{"196", "46", "33"}

var ledNames = [3]string{"red", "green", "blue"}

// starter is the part of PlaybackSession the UI uses.  None of these calls
// block on playback.
type starter interface {
    TryStart(word string) bool
    State() PlaybackState
    LastError() error
    Unit() time.Duration
}

type levelReader interface {
    Level(pin int) bool
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
    return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
        return tickMsg(t)
    })
}

type model struct {
    session starter
    leds    levelReader
    pins    PinMap
    maxLen  int
    input   string
    status  string
    failed  bool
    running bool // state seen at the previous tick
}

func newModel(session starter, leds levelReader, pins PinMap, maxLen int) model {
    return model{session: session, leds: leds, pins: pins, maxLen: maxLen}
}

func (m model) Init() tea.Cmd {
    return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.KeyMsg:
        switch msg.Type {
        case tea.KeyCtrlC, tea.KeyEsc:
            return m, tea.Quit
        case tea.KeyEnter:
            return m.start(), nil
        case tea.KeyBackspace:
            if m.input != "" {
                _, size := utf8.DecodeLastRuneInString(m.input)
                m.input = m.input[:len(m.input)-size]
            }
        case tea.KeyCtrlU:
            m.input = ""
        case tea.KeySpace:
            m = m.appendText(" ")
        case tea.KeyRunes:
            m = m.appendText(string(msg.Runes))
        }
        return m, nil
    case tickMsg:
        running := m.session.State() == StateRunning
        if m.running && !running {
            if err := m.session.LastError(); err != nil {
                m.status = fmt.Sprintf("failed: %v", err)
                m.failed = true
            } else {
                m.status = "done"
            }
        }
        m.running = running
        return m, tickCmd()
    }
    return m, nil
}

// appendText adds typed characters up to the length limit.
func (m model) appendText(s string) model {
    for _, r := range s {
        if utf8.RuneCountInString(m.input) >= m.maxLen {
            break
        }
        m.input += string(r)
    }
    return m
}

// start hands the word to the session.  TryStart returns immediately, so the
// event loop stays responsive while the LEDs blink.
func (m model) start() model {
    word := strings.ToLower(m.input)
    m.failed = false
    if !m.session.TryStart(word) {
        m.status = fmt.Sprintf("busy, ignored %q", word)
        return m
    }
    m.running = true
    m.status = fmt.Sprintf("playing %q (%s)", word, wordDuration(word, m.session.Unit()).Round(100*time.Millisecond))
    return m
}

func (m model) View() string {
    var b strings.Builder
    b.WriteString(titleStyle.Render("Morse Code Machine"))
    b.WriteString("\n\n")

    field := m.input
    if field == "" {
        field = placeholderStyle.Render("Enter a word")
    }
    b.WriteString(inputStyle.Width(m.maxLen + 2).Render(field))
    b.WriteString("\n\n")

    leds := make([]string, 0, 3)
    for i, pin := range m.pins.All() {
        if m.leds.Level(pin) {
            style := lipgloss.NewStyle().Bold(true).Foreground(ledColors[i])
            leds = append(leds, style.Render("● "+ledNames[i]))
        } else {
            leds = append(leds, ledOffStyle.Render("○ "+ledNames[i]))
        }
    }
    b.WriteString(strings.Join(leds, "   "))
    b.WriteString("\n\n")

    if m.status != "" {
        if m.failed {
            b.WriteString(errorStyle.Render(m.status))
        } else {
            b.WriteString(statusStyle.Render(m.status))
        }
        b.WriteString("\n")
    }
    b.WriteString(helpStyle.Render("enter: display  ctrl+u: clear  esc: quit"))
    b.WriteString("\n")
    return b.String()
}

// runTUI blocks until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, session starter, leds levelReader, cfg Config) error {
    p := tea.NewProgram(newModel(session, leds, cfg.Pins, cfg.MaxWordLength), tea.WithAltScreen())
    go func() {
        <-ctx.Done()
        p.Quit()
    }()
    _, err := p.Run()
    return err
}
