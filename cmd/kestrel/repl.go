package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/kestrel/codebase"
	"github.com/dhamidi/kestrel/format"
	"github.com/dhamidi/kestrel/lang/ast"
	"github.com/dhamidi/kestrel/lang/parser"
)

var (
	accentColor    = lipgloss.Color("#0EA5E9")
	successColor   = lipgloss.Color("#22C55E")
	errorColor     = lipgloss.Color("#F43F5E")
	mutedColor     = lipgloss.Color("#71717A")
	highlightColor = lipgloss.Color("#EAB308")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	names       map[string]bool
	pretty      bool
	indent      int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
	Clear key.Binding
	Tab   key.Binding
	Help  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "parse"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "help"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "kestrel> "

	return replModel{
		textInput:  ti,
		historyIdx: -1,
		names:      make(map[string]bool),
		indent:     2,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 12
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			return m.complete(), nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.cmdHistory = append(m.cmdHistory, input)
			m.historyIdx = -1
			m.textInput.SetValue("")

			if strings.HasPrefix(input, ":") {
				m, cmd = m.handleCommand(input)
				return m, cmd
			}

			output, isErr := m.parseProgram(input)
			m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	entry := historyEntry{input: input}
	switch name {
	case ":help", ":h":
		m.showHelp = !m.showHelp
		return m, nil
	case ":clear", ":c":
		m.history = nil
		return m, nil
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	case ":pretty", ":p":
		m.pretty = !m.pretty
		if m.pretty {
			entry.output = "pretty output on"
		} else {
			entry.output = "pretty output off"
		}
	case ":expr", ":e":
		entry.output, entry.isErr = m.parseExpression(rest)
	case ":tokens", ":t":
		entry.output, entry.isErr = tokenListing(rest)
	default:
		entry.output = fmt.Sprintf("Unknown command: %s", name)
		entry.isErr = true
	}
	m.history = append(m.history, entry)
	return m, nil
}

func (m replModel) parseProgram(input string) (string, bool) {
	prog, err := parser.ParseProgram(input)
	if err != nil {
		return err.Error(), true
	}
	for _, sym := range codebase.Symbols(prog) {
		m.names[sym.Name] = true
	}
	return m.render(prog), false
}

func (m replModel) parseExpression(input string) (string, bool) {
	expr, err := parser.ParseExpression(input)
	if err != nil {
		return err.Error(), true
	}
	return m.render(expr), false
}

func (m replModel) render(node ast.Node) string {
	if m.pretty {
		return format.PrettySExpr(node, m.indent)
	}
	return format.CompactSExpr(node)
}

func tokenListing(input string) (string, bool) {
	tokens, err := parser.Tokenize(input, "")
	text, encErr := format.NewTokenEncoder(nil, input).MarshalText(tokens)
	if encErr != nil {
		return encErr.Error(), true
	}
	out := strings.TrimRight(string(text), "\n")
	if err != nil {
		return strings.TrimLeft(out+"\n"+err.Error(), "\n"), true
	}
	return out, false
}

// complete extends the identifier before the cursor with a keyword or a
// name declared earlier in the session.
func (m replModel) complete() replModel {
	input := m.textInput.Value()
	start := len(input)
	for start > 0 && isIdentChar(input[start-1]) {
		start--
	}
	prefix := input[start:]
	if prefix == "" {
		return m
	}

	var candidates []string
	for _, kw := range parser.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			candidates = append(candidates, kw)
		}
	}
	var names []string
	for name := range m.names {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	candidates = append(candidates, names...)

	switch len(candidates) {
	case 0:
	case 1:
		m.textInput.SetValue(input[:start] + candidates[0])
		m.textInput.CursorEnd()
	default:
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(candidates, ", "),
		})
	}
	return m
}

func isIdentChar(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Bye.\n")
	}

	var b strings.Builder

	mode := "compact"
	if m.pretty {
		mode = "pretty"
	}
	b.WriteString(headerStyle.Render("kestrel") + " " + mutedStyle.Render("v"+version+" · "+mode) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reserved := 8
	if m.showHelp {
		reserved += 11
	}
	available := max(m.height-reserved, 1)

	start := 0
	if len(m.history) > available {
		start = len(m.history) - available
	}
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		style, marker := resultStyle, "→ "
		if entry.isErr {
			style, marker = errorStyle, "✗ "
		}
		for i, line := range strings.Split(entry.output, "\n") {
			if i == 0 {
				line = marker + line
			} else {
				line = "  " + line
			}
			b.WriteString("  " + style.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("tab") + helpDescStyle.Render(" complete  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"Enter", "Parse the input as a program"},
		{"↑/↓", "Walk the input history"},
		{"Tab", "Complete keywords and declared names"},
		{":expr", "Parse the rest of the line as an expression"},
		{":tokens", "List the tokens of the rest of the line"},
		{":pretty", "Toggle pretty output"},
		{":clear", "Clear the history"},
		{":help", "Toggle this help"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
