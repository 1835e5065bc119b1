// Package preview provides the live markup preview TUI: a text input,
// a rendered pane, a token and tree inspector, and a syntax help
// overlay. Links in the rendered pane are clickable through bubblezone.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/inkline/internal/log"
	"github.com/zjrosen/inkline/internal/markup"
	"github.com/zjrosen/inkline/internal/render"
	"github.com/zjrosen/inkline/internal/theme"
	"github.com/zjrosen/inkline/internal/ui/helpview"
)

// FileChangedMsg signals that the watched source file changed on disk.
type FileChangedMsg struct{}

// logEntryMsg carries one formatted log line into the log pane.
type logEntryMsg struct{ line string }

// logStreamClosedMsg signals that the log subscription channel closed.
type logStreamClosedMsg struct{}

// logMaxLines bounds the log pane backlog.
const logMaxLines = 8

// Config defines the preview configuration.
type Config struct {
	// Theme drives all styling. Nil falls back to the default theme.
	Theme *theme.Theme
	// Session is the memoizing parse session. Nil creates a fresh one.
	Session *markup.Session
	// InitialText seeds the input.
	InitialText string
	// OnChange delivers live reload signals from a file watcher.
	OnChange <-chan struct{}
	// LoadSource re-reads the watched file after a change signal.
	LoadSource func() (string, error)
	// Hyperlinks selects OSC 8 emission for the rendered pane.
	Hyperlinks render.HyperlinkMode
}

// linkState is shared across model copies so link callbacks fired from
// the content tree stay visible after bubbletea copies the model.
type linkState struct {
	tapped  string
	hovered string
}

// Model holds the preview state.
type Model struct {
	input    textinput.Model
	session  *markup.Session
	theme    *theme.Theme
	provider *theme.Provider
	cfg      Config

	nodes  []markup.Node
	tokens []markup.Token
	links  []*markup.Link // document order, parallel to zone ids
	state  *linkState

	showInspector bool
	showHelp      bool
	helpText      string
	hoveredZone   string

	showLogs  bool
	logLines  []string
	logCh     <-chan log.LogEvent
	logCancel context.CancelFunc

	width    int
	height   int
	quitting bool
}

// New creates a preview model.
func New(cfg Config) Model {
	th := cfg.Theme
	if th == nil {
		th = theme.Default()
	}
	session := cfg.Session
	if session == nil {
		session = markup.NewSession(markup.SessionConfig{})
	}

	state := &linkState{}
	provider := theme.NewProvider(th).
		WithLinkTap(func(url, _ string) { state.tapped = url }).
		WithLinkHover(func(url, _ string, hovering bool) {
			if hovering {
				state.hovered = url
			} else if state.hovered == url {
				state.hovered = ""
			}
		})

	ti := textinput.New()
	ti.Placeholder = "**bold** _italic_ [link](example.org) ..."
	ti.Prompt = "> "
	ti.SetValue(cfg.InitialText)
	ti.Focus()

	m := Model{
		input:    ti,
		session:  session,
		theme:    th,
		provider: provider,
		cfg:      cfg,
		state:    state,
		width:    80,
		height:   24,
	}
	m.reparse()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.EnableMouseCellMotion}
	if m.cfg.OnChange != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks on the watcher channel and converts the signal
// into a message.
func (m Model) waitForChange() tea.Cmd {
	ch := m.cfg.OnChange
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 20)
		return m, nil

	case FileChangedMsg:
		if m.cfg.LoadSource != nil {
			text, err := m.cfg.LoadSource()
			if err != nil {
				log.ErrorErr(log.CatUI, "reload failed", err)
			} else {
				m.input.SetValue(text)
				m.reparse()
			}
		}
		if m.cfg.OnChange != nil {
			return m, m.waitForChange()
		}
		return m, nil

	case logEntryMsg:
		m.logLines = append(m.logLines, msg.line)
		if len(m.logLines) > logMaxLines {
			m.logLines = m.logLines[len(m.logLines)-logMaxLines:]
		}
		if m.logCh != nil {
			return m, waitForLogEntry(m.logCh)
		}
		return m, nil

	case logStreamClosedMsg:
		m.logCh = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.stopLogStream()
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.stopLogStream()
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlT:
		m.showInspector = !m.showInspector
		return m, nil

	case tea.KeyCtrlL:
		return m.toggleLogs()

	case tea.KeyCtrlG:
		m.showHelp = !m.showHelp
		if m.showHelp && m.helpText == "" {
			m.helpText = m.renderHelp()
		}
		return m, nil
	}

	if m.showHelp {
		// Help overlay swallows remaining keys
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.reparse()
	return m, cmd
}

// toggleLogs opens or closes the live log pane. Entries only flow when
// debug logging is enabled; otherwise the pane says so.
func (m Model) toggleLogs() (tea.Model, tea.Cmd) {
	if m.showLogs {
		m.showLogs = false
		m.stopLogStream()
		return m, nil
	}

	m.showLogs = true
	m.logLines = nil
	ctx, cancel := context.WithCancel(context.Background())
	ch := log.NewListener(ctx)
	if ch == nil {
		cancel()
		m.logLines = []string{"logging disabled (run with --debug)"}
		return m, nil
	}
	m.logCancel = cancel
	m.logCh = ch
	return m, waitForLogEntry(ch)
}

// stopLogStream cancels the log subscription if one is active.
func (m *Model) stopLogStream() {
	if m.logCancel != nil {
		m.logCancel()
		m.logCancel = nil
		m.logCh = nil
	}
}

// waitForLogEntry blocks on the log subscription and converts the next
// entry into a message.
func waitForLogEntry(ch <-chan log.LogEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return logStreamClosedMsg{}
		}
		return logEntryMsg{line: strings.TrimRight(event.Payload, "\n")}
	}
}

// handleMouseMsg resolves clicks and hover motion against link zones.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		for i, link := range m.links {
			z := zone.Get(m.zoneID(i))
			if z == nil || !z.InBounds(msg) {
				continue
			}
			if link.OnTap != nil {
				link.OnTap(link.URL, link.DisplayText)
			}
			log.Debug(log.CatUI, "link tapped", "url", link.URL)
			return m, nil
		}

	case msg.Action == tea.MouseActionMotion:
		for i, link := range m.links {
			z := zone.Get(m.zoneID(i))
			if z == nil {
				continue
			}
			id := m.zoneID(i)
			inside := z.InBounds(msg)
			if inside && m.hoveredZone != id {
				m.hoveredZone = id
				if link.OnHover != nil {
					link.OnHover(link.URL, link.DisplayText, true)
				}
			} else if !inside && m.hoveredZone == id {
				m.hoveredZone = ""
				if link.OnHover != nil {
					link.OnHover(link.URL, link.DisplayText, false)
				}
			}
		}
	}

	return m, nil
}

// reparse reruns the pipeline on the current input. The session
// memoizes, so unchanged text is a cache hit.
func (m *Model) reparse() {
	text := m.input.Value()
	m.tokens = markup.Tokenize(text)
	m.nodes = m.session.Parse(context.Background(), text, markup.Options{
		Provider: m.provider,
	}, markup.Layout{})
	m.links = collectLinks(m.nodes)
}

// zoneID returns the bubblezone id for the i-th link in document order.
func (m Model) zoneID(i int) string {
	return fmt.Sprintf("preview:link:%d", i)
}

// collectLinks walks the tree in document order, matching the order the
// renderer invokes the link marker hook.
func collectLinks(nodes []markup.Node) []*markup.Link {
	var links []*markup.Link
	for _, n := range nodes {
		switch n := n.(type) {
		case *markup.Link:
			links = append(links, n)
			links = append(links, collectLinks(n.Children)...)
		case *markup.Group:
			links = append(links, collectLinks(n.Children)...)
		case *markup.Embedded:
			links = append(links, collectLinks(n.Children)...)
		}
	}
	return links
}

// renderHelp renders the syntax reference with glamour.
func (m Model) renderHelp() string {
	r, err := helpview.New(min(m.width-4, 80))
	if err != nil {
		return helpview.SyntaxSource()
	}
	out, err := r.Syntax()
	if err != nil {
		return helpview.SyntaxSource()
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.helpText,
		)
	}

	return zone.Scan(m.renderMain())
}

// renderMain renders the input, output, and inspector panes.
func (m Model) renderMain() string {
	var zoneCounter int
	renderer := render.New(render.Options{
		Width:      max(m.width-6, 20),
		MaxLines:   max(m.height-10, 3),
		Hyperlinks: m.cfg.Hyperlinks,
		LinkMarker: func(_, rendered string) string {
			id := m.zoneID(zoneCounter)
			zoneCounter++
			return zone.Mark(id, rendered)
		},
	})
	rendered := renderer.Render(m.nodes)
	if rendered == "" {
		rendered = m.mutedStyle().Render("(empty)")
	}

	inputPane := m.paneStyle(true).Width(m.paneWidth()).Render(m.input.View())
	outputPane := m.paneStyle(false).Width(m.paneWidth()).Render(rendered)

	sections := []string{
		m.titleStyle().Render("inkline preview"),
		inputPane,
		outputPane,
	}
	if m.showInspector {
		sections = append(sections, m.renderInspector())
	}
	if m.showLogs {
		sections = append(sections, m.renderLogs())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInspector renders the token stream and tree outline.
func (m Model) renderInspector() string {
	var sb strings.Builder
	sb.WriteString(m.sectionStyle().Render("Tokens"))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(markup.FormatTokens(m.tokens), "\n"))
	sb.WriteString("\n")
	sb.WriteString(m.sectionStyle().Render("Tree"))
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(markup.FormatTree(m.nodes), "\n"))
	return m.paneStyle(false).Width(m.paneWidth()).Render(sb.String())
}

// renderLogs renders the most recent log entries.
func (m Model) renderLogs() string {
	var sb strings.Builder
	sb.WriteString(m.sectionStyle().Render("Logs"))
	sb.WriteString("\n")
	if len(m.logLines) == 0 {
		sb.WriteString(m.mutedStyle().Render("waiting for log entries..."))
	} else {
		for i, line := range m.logLines {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(render.Truncate(line, m.paneWidth()-2, "…"))
		}
	}
	return m.paneStyle(false).Width(m.paneWidth()).Render(sb.String())
}

// renderFooter renders key hints and link status.
func (m Model) renderFooter() string {
	parts := []string{"Ctrl+T: Inspector", "Ctrl+L: Logs", "Ctrl+G: Syntax help", "Esc: Quit"}
	if m.state.hovered != "" {
		parts = append(parts, "hover: "+m.state.hovered)
	}
	if m.state.tapped != "" {
		parts = append(parts, "opened: "+m.state.tapped)
	}
	return m.mutedStyle().Width(m.width).Render(strings.Join(parts, "  │  "))
}

func (m Model) paneWidth() int {
	return max(m.width-4, 24)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	border := m.theme.Color(theme.TokenBorderDefault)
	if focused {
		border = m.theme.Color(theme.TokenBorderFocus)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Color(theme.TokenTextPrimary)).
		PaddingLeft(1)
}

func (m Model) sectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Color(theme.TokenTextPrimary))
}

func (m Model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Color(theme.TokenTextMuted))
}
