// Package playground contains the practice-buffer component: a text pane
// driven by the key interpreter plus a status bar and help footer.
package playground

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/keytrain/internal/buffer"
	"github.com/zjrosen/keytrain/internal/config"
	"github.com/zjrosen/keytrain/internal/grapheme"
	"github.com/zjrosen/keytrain/internal/interp"
	"github.com/zjrosen/keytrain/internal/keys"
	"github.com/zjrosen/keytrain/internal/log"
	"github.com/zjrosen/keytrain/internal/pubsub"
	"github.com/zjrosen/keytrain/internal/session"
	"github.com/zjrosen/keytrain/internal/ui/styles"
	"github.com/zjrosen/keytrain/internal/watcher"
)

// Config wires the playground to its session and supporting services.
type Config struct {
	Session *session.Session
	Buffer  *buffer.LineBuffer

	// Sample is the text the buffer resets to.
	Sample string

	UI config.UIConfig

	// Reload re-reads the config file. Nil disables hot reload.
	Reload func() (config.Config, error)

	// Watcher publishes config-change events. Nil disables hot reload.
	Watcher *watcher.Watcher
}

// Model is the playground component state.
type Model struct {
	session *session.Session
	buf     *buffer.LineBuffer
	sample  string
	uiCfg   config.UIConfig
	reload  func() (config.Config, error)

	km       keys.KeyMap
	help     help.Model
	showHelp bool

	ctx    context.Context
	cancel context.CancelFunc

	notifyListener  *pubsub.ContinuousListener[session.Notification]
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]

	mode   interp.Mode
	status string
	width  int
	height int
}

// New creates a playground model. The session is started by Init.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		session: cfg.Session,
		buf:     cfg.Buffer,
		sample:  cfg.Sample,
		uiCfg:   cfg.UI,
		reload:  cfg.Reload,
		km:      keys.DefaultKeyMap(),
		help:    help.New(),
		ctx:     ctx,
		cancel:  cancel,
		mode:    interp.ModeNormal,
		status:  interp.ModeNormal.String(),
	}
	m.notifyListener = pubsub.NewContinuousListener(ctx, cfg.Session.Broker())
	if cfg.Watcher != nil && cfg.Reload != nil {
		m.watcherListener = pubsub.NewContinuousListener(ctx, cfg.Watcher.Broker())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.session.Start(m.ctx)

	cmds := []tea.Cmd{m.notifyListener.Listen()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Close stops the session and cancels all subscriptions.
func (m Model) Close() error {
	err := m.session.Stop()
	m.cancel()
	return err
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.km.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.km.ToggleSession):
			if err := m.session.Toggle(m.ctx); err != nil {
				log.ErrorErr(log.CatUI, "failed to toggle session", err)
			}
			return m, nil

		case key.Matches(msg, m.km.ResetBuffer):
			m.buf.SetText(m.sample)
			return m, nil

		case key.Matches(msg, m.km.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			m.session.Calibrate()
			return m, nil
		}

		for _, ev := range translateKey(msg) {
			m.session.HandleKey(ev)
		}
		return m, nil

	case pubsub.Event[session.Notification]:
		m.mode = msg.Payload.Mode
		m.status = msg.Payload.Status
		return m, m.notifyListener.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		switch msg.Payload.Type {
		case watcher.ConfigChanged:
			cfg, err := m.reload()
			if err != nil {
				log.Warn(log.CatUI, "Config reload failed", "error", err)
				return m, m.watcherListener.Listen()
			}
			m.session.Interpreter().SetPolicy(cfg.Editor.Policy())
			m.uiCfg = cfg.UI
			log.Info(log.CatUI, "Config reloaded")

		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
		}
		return m, m.watcherListener.Listen()
	}

	return m, nil
}

// translateKey converts a Bubble Tea key message into interpreter events.
// A paste of several clusters becomes one event per cluster.
func translateKey(msg tea.KeyMsg) []interp.KeyEvent {
	switch msg.Type {
	case tea.KeyEsc:
		return []interp.KeyEvent{interp.RawKey(interp.KeyEscape)}
	case tea.KeyEnter:
		return []interp.KeyEvent{interp.RawKey(interp.KeyEnter)}
	case tea.KeyBackspace:
		return []interp.KeyEvent{interp.RawKey(interp.KeyBackspace)}
	case tea.KeyTab:
		return []interp.KeyEvent{interp.RawKey(interp.KeyTab)}
	case tea.KeySpace:
		return []interp.KeyEvent{interp.TextInput(" ")}
	case tea.KeyRunes:
		clusters := grapheme.Clusters(string(msg.Runes))
		events := make([]interp.KeyEvent, 0, len(clusters))
		for _, c := range clusters {
			events = append(events, interp.TextInput(c))
		}
		return events
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBuffer())
	if m.uiCfg.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.km)))

	return b.String()
}

// renderBuffer draws the buffer text with the cursor cell reversed.
func (m Model) renderBuffer() string {
	cursor := m.buf.Cursor()
	lines := m.buf.Lines()

	rendered := make([]string, len(lines))
	for i, line := range lines {
		if i == cursor.Line {
			rendered[i] = renderCursorLine(line, cursor.Col)
			continue
		}
		rendered[i] = styles.BufferTextStyle.Render(truncateLine(line, m.width))
	}
	return strings.Join(rendered, "\n")
}

// truncateLine cuts a line to the given display width on cluster
// boundaries. Width 0 means unknown terminal size; no truncation.
func truncateLine(line string, width int) string {
	if width <= 0 || grapheme.StringWidth(line) <= width {
		return line
	}
	var b strings.Builder
	used := 0
	for _, c := range grapheme.Clusters(line) {
		w := grapheme.Width(c)
		if used+w > width {
			break
		}
		b.WriteString(c)
		used += w
	}
	return b.String()
}

// renderCursorLine draws one line with the cluster at col highlighted. The
// cursor may sit one past the last cluster; it is drawn on a space there.
func renderCursorLine(line string, col int) string {
	clusters := grapheme.Clusters(line)
	var b strings.Builder
	for i, c := range clusters {
		if i == col {
			b.WriteString(styles.CursorStyle.Render(c))
			continue
		}
		b.WriteString(styles.BufferTextStyle.Render(c))
	}
	if col >= len(clusters) {
		b.WriteString(styles.CursorStyle.Render(" "))
	}
	return b.String()
}

// renderStatusBar draws the mode badge and the in-flight command echo.
func (m Model) renderStatusBar() string {
	badge := styles.ModeNormalBadgeStyle.Render("NORMAL")
	if !m.session.Running() {
		badge = styles.PausedBadgeStyle.Render("PAUSED")
	} else if m.mode == interp.ModeInsert {
		badge = styles.ModeInsertBadgeStyle.Render("INSERT")
	}

	var echo string
	if m.uiCfg.ShowKeyEcho && m.session.Running() {
		echo = strings.TrimPrefix(m.status, m.mode.String())
		echo = styles.StatusTextStyle.Render(strings.TrimSpace(echo))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, badge, echo)
}
