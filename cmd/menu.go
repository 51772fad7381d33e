package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/browser"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/config"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/drawer"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/editor"
	"github.com/AlexK-Notable/zmk-config-offsetkey/pkg/gitops"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Menu modes
const (
	modeMenu = iota
	modeReport
	modeConfirm
	modeInput
	modeWorking
)

// Menu actions
const (
	actionEditKeymap = iota
	actionEditConf
	actionLayers
	actionSettings
	actionDraw
	actionOpenSVG
	actionReference
	actionPush
	actionActions
	actionQuit
)

type menuItem struct {
	shortcut string
	label    string
	action   int
}

func menuItems() []menuItem {
	return []menuItem{
		{"1", "Redraw keymap diagram", actionDraw},
		{"2", "Open keymap diagram", actionOpenSVG},
		{"3", "Edit keymap", actionEditKeymap},
		{"4", "Edit firmware settings", actionEditConf},
		{"5", "Show layers", actionLayers},
		{"6", "Show settings", actionSettings},
		{"r", "Open ZMK reference", actionReference},
		{"g", "Commit and push", actionPush},
		{"a", "Open GitHub Actions", actionActions},
		{"q", "Quit", actionQuit},
	}
}

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Yes    key.Binding
	No     key.Binding
	Quit   key.Binding
}

func newMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Yes: key.NewBinding(key.WithKeys("y", "Y")),
		No:  key.NewBinding(key.WithKeys("n", "N")),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// reportMsg carries the outcome of a menu action back into the TUI.
type reportMsg struct {
	title string
	body  string
	err   error
}

type editorDoneMsg struct{ err error }

type statusMsg struct {
	changes []gitops.Change
	err     error
}

type pushDoneMsg struct{ err error }

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")).MarginBottom(1)
	menuSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	menuShortcutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

type menuModel struct {
	cfg    *config.Config
	keys   menuKeyMap
	items  []menuItem
	cursor int
	mode   int

	report  reportMsg
	working string
	spin    spinner.Model
	input   textinput.Model
	changes []gitops.Change

	width  int
	height int
}

// runMenu launches the interactive menu shown on a bare terminal invocation.
func runMenu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Git.DefaultMessage
	ti.Prompt = "> "
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	m := menuModel{
		cfg:   cfg,
		keys:  newMenuKeyMap(),
		items: menuItems(),
		spin:  sp,
		input: ti,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reportMsg:
		m.report = msg
		m.mode = modeReport
		return m, nil

	case editorDoneMsg:
		m.mode = modeMenu
		if msg.err != nil {
			m.report = reportMsg{title: "Editor", err: msg.err}
			m.mode = modeReport
		}
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.report = reportMsg{title: "Git", err: msg.err}
			m.mode = modeReport
			return m, nil
		}
		if len(msg.changes) == 0 {
			m.report = reportMsg{title: "Git", body: "No changes to commit"}
			m.mode = modeReport
			return m, nil
		}
		m.changes = msg.changes
		m.mode = modeConfirm
		return m, nil

	case pushDoneMsg:
		if msg.err != nil {
			m.report = reportMsg{title: "Push", err: msg.err}
		} else {
			m.report = reportMsg{title: "Push", body: "Pushed! GitHub Actions will build firmware."}
		}
		m.mode = modeReport
		return m, nil

	case spinner.TickMsg:
		if m.mode == modeWorking {
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeReport:
			// Any key returns to the menu.
			m.mode = modeMenu
			return m, nil

		case modeConfirm:
			switch {
			case key.Matches(msg, m.keys.Yes), key.Matches(msg, m.keys.Select):
				m.mode = modeInput
				m.input.SetValue("")
				return m, m.input.Focus()
			case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
				m.changes = nil
				m.mode = modeMenu
			}
			return m, nil

		case modeInput:
			switch {
			case key.Matches(msg, m.keys.Select):
				message := strings.TrimSpace(m.input.Value())
				if message == "" {
					message = m.cfg.Git.DefaultMessage
				}
				m.input.Blur()
				m.mode = modeWorking
				m.working = "Pushing..."
				return m, tea.Batch(m.spin.Tick, m.pushCmd(message))
			case key.Matches(msg, m.keys.Back):
				m.input.Blur()
				m.mode = modeMenu
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case modeWorking:
			return m, nil
		}

		// modeMenu
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Up) {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.items) - 1
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Down) {
			m.cursor++
			if m.cursor >= len(m.items) {
				m.cursor = 0
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Select) {
			return m.dispatch(m.items[m.cursor].action)
		}
		for i, item := range m.items {
			if msg.String() == item.shortcut {
				m.cursor = i
				return m.dispatch(item.action)
			}
		}
	}

	return m, nil
}

// dispatch starts the selected action, switching mode as needed.
func (m menuModel) dispatch(action int) (tea.Model, tea.Cmd) {
	switch action {
	case actionQuit:
		return m, tea.Quit

	case actionEditKeymap:
		return m, m.editCmd(m.cfg.Abs(m.cfg.Paths.Keymap), referencePath(m.cfg, true))

	case actionEditConf:
		return m, m.editCmd(m.cfg.Abs(m.cfg.Paths.Conf), "")

	case actionReference:
		ref := referencePath(m.cfg, true)
		if ref == "" {
			m.report = reportMsg{title: "Reference", err: fmt.Errorf("no reference document at %s", m.cfg.Paths.Reference)}
			m.mode = modeReport
			return m, nil
		}
		return m, m.editCmd(ref, "")

	case actionLayers:
		return m, func() tea.Msg {
			layers, combos, err := extractKeymap(m.cfg.Abs(m.cfg.Paths.Keymap))
			if err != nil {
				return reportMsg{title: "Layers", err: err}
			}
			if len(layers) == 0 {
				return reportMsg{title: "Layers", body: "No layers found in keymap"}
			}
			return reportMsg{title: "Layers", body: renderLayers(layers, combos)}
		}

	case actionSettings:
		return m, func() tea.Msg {
			settings, err := probeSettings(m.cfg)
			if err != nil {
				return reportMsg{title: "Settings", err: err}
			}
			return reportMsg{title: "Settings", body: renderSettings(settings)}
		}

	case actionDraw:
		m.mode = modeWorking
		m.working = "Drawing keymap..."
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			if _, err := drawer.New(m.cfg).Generate(); err != nil {
				return reportMsg{title: "Draw", err: err}
			}
			return reportMsg{title: "Draw", body: "Wrote " + m.cfg.Paths.SVG}
		})

	case actionOpenSVG:
		m.mode = modeWorking
		m.working = "Opening drawing..."
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			svg := m.cfg.Abs(m.cfg.Paths.SVG)
			if _, err := os.Stat(svg); os.IsNotExist(err) {
				if _, err := drawer.New(m.cfg).Generate(); err != nil {
					return reportMsg{title: "Open", err: err}
				}
			}
			if err := browser.Open(svg); err != nil {
				return reportMsg{title: "Open", err: err}
			}
			return reportMsg{title: "Open", body: "Opened " + m.cfg.Paths.SVG}
		})

	case actionActions:
		return m, func() tea.Msg {
			url, err := gitops.New(m.cfg.Root).ActionsURL()
			if err != nil {
				return reportMsg{title: "Actions", err: err}
			}
			if err := browser.Open(url); err != nil {
				return reportMsg{title: "Actions", err: err}
			}
			return reportMsg{title: "Actions", body: "Opened " + url}
		}

	case actionPush:
		m.mode = modeWorking
		m.working = "Checking status..."
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			changes, err := changedFiles(m.cfg.Root)
			return statusMsg{changes: changes, err: err}
		})
	}

	return m, nil
}

// editCmd suspends the TUI and runs the editor on target.
func (m menuModel) editCmd(target, reference string) tea.Cmd {
	ed := editor.Resolve(m.cfg.Editor.Command)
	op := editor.Plan(ed, target, reference)
	return tea.ExecProcess(op.Cmd(), func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}

func (m menuModel) pushCmd(message string) tea.Cmd {
	return func() tea.Msg {
		client := gitops.New(m.cfg.Root)
		if err := client.AddAll(); err != nil {
			return pushDoneMsg{err: err}
		}
		if err := client.Commit(message); err != nil {
			return pushDoneMsg{err: err}
		}
		if err := client.Push(); err != nil {
			return pushDoneMsg{err: err}
		}
		return pushDoneMsg{}
	}
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(menuTitleStyle.Render("Offsetkey ZMK config"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.cfg.Root))
	b.WriteString("\n\n")

	switch m.mode {
	case modeReport:
		b.WriteString(headerStyle.Render(m.report.title))
		b.WriteString("\n\n")
		if m.report.err != nil {
			b.WriteString(errorStyle.Render("✗ " + m.report.err.Error()))
		} else {
			b.WriteString(m.report.body)
		}
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("any key to return"))

	case modeConfirm:
		b.WriteString(headerStyle.Render("Uncommitted changes"))
		b.WriteString("\n\n")
		for _, c := range m.changes {
			b.WriteString(fmt.Sprintf("  %s %s\n", c.Code, c.Path))
		}
		b.WriteString("\n")
		b.WriteString("Commit and push? ")
		b.WriteString(faintStyle.Render("[y/n]"))

	case modeInput:
		b.WriteString(headerStyle.Render("Commit message"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter to push, esc to cancel"))

	case modeWorking:
		b.WriteString(m.spin.View())
		b.WriteString(" ")
		b.WriteString(m.working)

	default:
		for i, item := range m.items {
			cursor := "  "
			label := item.label
			if i == m.cursor {
				cursor = menuSelectedStyle.Render("→ ")
				label = menuSelectedStyle.Render(label)
			}
			b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, menuShortcutStyle.Render(item.shortcut), label))
		}
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("↑/↓ move · enter select · q quit"))
	}

	b.WriteString("\n")
	return b.String()
}
