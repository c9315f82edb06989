package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"

	"github.com/ovaum/pocketradio/internal/config"
	"github.com/ovaum/pocketradio/internal/controls"
	"github.com/ovaum/pocketradio/internal/engine"
	"github.com/ovaum/pocketradio/internal/library"
	"github.com/ovaum/pocketradio/internal/mixer"
	"github.com/ovaum/pocketradio/internal/radio"
	"github.com/ovaum/pocketradio/internal/state"
)

const trackRows = 10

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	playingStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	stripStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	focusedIconStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

type tickMsg time.Time

type libraryChangedMsg struct{}

type model struct {
	cfg      *config.Config
	radio    *radio.Controller
	engine   *engine.Engine
	stateMgr *state.Manager
	watcher  *library.Watcher
	progress progress.Model
	logClose io.Closer
	width    int
	height   int
}

func initialModel() (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}

	logger, logClose := newLogger(cfg.LogFile)
	slog.SetDefault(logger)

	stateMgr, err := state.Open()
	if err != nil {
		return model{}, err
	}

	tracks := library.Scan(cfg.MediaDir, cfg.Extensions)

	eng, err := engine.New(engine.Config{
		PreferredDevice: cfg.PreferredDevice,
		CompletionDelay: cfg.CompletionDelay(),
		Logger:          logger,
	})
	if err != nil {
		stateMgr.Close()
		return model{}, err
	}

	var cardID string
	if card, ok := eng.OutputCard(); ok {
		cardID = card.ID
	}

	accent, accentDark, background := cfg.Colors()
	ctl := radio.New(radio.Config{
		Engine:   eng,
		Mixer:    mixer.NewAmixer(cardID),
		MediaDir: cfg.MediaDir,
		Tracks:   tracks,
		Palette:  controls.NewPalette(accent, accentDark, background),
		Autoplay: cfg.Autoplay,
		Logger:   logger,
	})

	if session, err := stateMgr.GetSession(); err == nil {
		ctl.RestoreSession(session)
	}

	watcher, err := library.NewWatcher(cfg.MediaDir)
	if err != nil {
		logger.Warn("media directory watch unavailable", "error", err)
	}

	return model{
		cfg:      cfg,
		radio:    ctl,
		engine:   eng,
		stateMgr: stateMgr,
		watcher:  watcher,
		progress: progress.New(progress.WithSolidFill(cfg.Accent)),
		logClose: logClose,
	}, nil
}

// newLogger writes structured logs to the configured file. Stderr is
// not usable while the terminal UI owns the screen, so without a file
// the logs are discarded.
func newLogger(path string) (*slog.Logger, io.Closer) {
	if path == "" {
		return slog.New(tint.NewHandler(io.Discard, nil)), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(tint.NewHandler(io.Discard, nil)), nil
	}
	handler := tint.NewHandler(f, &tint.Options{
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	})
	return slog.New(handler), f
}

func (m model) Init() tea.Cmd {
	m.radio.OnEnter()
	return tea.Batch(tickCmd(), m.watchCmd())
}

func (m model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.watcher.Events; !ok {
			return nil
		}
		return libraryChangedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, m.quit()
		case "up", "k":
			m.radio.OnKeyUp()
		case "down", "j":
			m.radio.OnKeyDown()
		case "left", "h":
			m.radio.OnKeyLeft()
		case "right", "l":
			m.radio.OnKeyRight()
		case "enter", " ":
			m.radio.OnSelect()
		}

	case libraryChangedMsg:
		m.radio.Rescan(library.Scan(m.cfg.MediaDir, m.cfg.Extensions))
		return m, m.watchCmd()

	case tickMsg:
		return m, tickCmd()
	}

	return m, nil
}

func (m model) quit() tea.Cmd {
	m.stateMgr.SaveSession(m.radio.Session())
	m.radio.OnLeave()
	if m.watcher != nil {
		m.watcher.Close()
	}
	m.engine.Close()
	m.stateMgr.Close()
	if m.logClose != nil {
		m.logClose.Close()
	}
	return tea.Quit
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) View() string {
	var b strings.Builder

	tracks := m.radio.Tracks()
	selected := m.radio.SelectedIndex()
	playing := m.radio.PlayingIndex()

	start, end := m.radio.Window(trackRows)
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%-40.40s %10s", tracks[i].Name,
			humanize.Bytes(uint64(tracks[i].Size))) //nolint:gosec // sizes from os.FileInfo are non-negative
		marker := "  "
		if i == playing {
			marker = "> "
			line = playingStyle.Render(line)
		}
		if i == selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	if len(tracks) == 0 {
		b.WriteString(dimStyle.Render("  no tracks") + "\n")
	}
	for i := end - start; i < trackRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n " + m.radio.TrackLine() + "\n")
	if p, ok := m.radio.Progress(); ok {
		b.WriteString(" " + m.progress.ViewAs(p) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.controlStrip() + "\n")
	return b.String()
}

// controlStrip renders the icon row with the focused control
// highlighted, and the volume readout on the right.
func (m model) controlStrip() string {
	var icons []string
	for _, c := range m.radio.Controls() {
		glyph := " " + c.Icon().Glyph + " "
		if c.Focused() {
			glyph = focusedIconStyle.Render(glyph)
		}
		icons = append(icons, glyph)
	}
	row := strings.Join(icons, " ")
	row += "   " + dimStyle.Render("vol "+m.radio.VolumeLine())
	return stripStyle.Render(" " + row + " ")
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
