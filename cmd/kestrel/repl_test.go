package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhamidi/kestrel/format"
	"github.com/dhamidi/kestrel/lang/parser"
)

func enter(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after %q", input)
	}
	return rm, cmd
}

func lastEntry(t *testing.T, m replModel) historyEntry {
	t.Helper()
	if len(m.history) == 0 {
		t.Fatal("history is empty")
	}
	return m.history[len(m.history)-1]
}

func TestREPLQuitCommandReturnsQuit(t *testing.T) {
	m, cmd := enter(t, newREPLModel(), ":quit")

	if !m.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestREPLHelpCommandTogglesHelp(t *testing.T) {
	m, cmd := enter(t, newREPLModel(), ":help")
	if cmd != nil {
		t.Fatalf("expected no command for :help")
	}
	if !m.showHelp {
		t.Fatalf("help should be shown")
	}
	m, _ = enter(t, m, ":h")
	if m.showHelp {
		t.Fatalf("help should be hidden again")
	}
}

func TestREPLParsesPrograms(t *testing.T) {
	m, cmd := enter(t, newREPLModel(), "let x: number = 5;")
	if cmd != nil {
		t.Errorf("expected no command")
	}

	entry := lastEntry(t, m)
	want := `(program (let (init (id x) (type Number) (number 5))))`
	if entry.isErr || entry.output != want {
		t.Errorf("output = %q (isErr %v), want %q", entry.output, entry.isErr, want)
	}
	if entry.input != "let x: number = 5;" {
		t.Errorf("input = %q", entry.input)
	}
	if !m.names["x"] {
		t.Errorf("declared name x was not remembered")
	}

	m, _ = enter(t, m, "let y = 1;")
	entry = lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.output, "TypeAnnotationExpected") {
		t.Errorf("output = %q (isErr %v), want a TypeAnnotationExpected error", entry.output, entry.isErr)
	}
}

func TestREPLPrettyMode(t *testing.T) {
	m, _ := enter(t, newREPLModel(), ":pretty")
	if !m.pretty {
		t.Fatal("pretty mode not enabled")
	}
	if got := lastEntry(t, m).output; got != "pretty output on" {
		t.Errorf("output = %q", got)
	}

	src := "if (a) { b = 1; }"
	m, _ = enter(t, m, src)
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := lastEntry(t, m).output, format.PrettySExpr(prog, 2); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}

	m, _ = enter(t, m, ":p")
	if m.pretty {
		t.Error("pretty mode not disabled")
	}
}

func TestREPLExpressionAndTokensCommands(t *testing.T) {
	m, _ := enter(t, newREPLModel(), ":expr f()()")
	if got := lastEntry(t, m).output; got != `(call (call (id f)))` {
		t.Errorf(":expr output = %q", got)
	}

	m, _ = enter(t, m, ":tokens x;")
	want := "1:1\tIdentifier\t\"x\"\n1:2\t;\t\";\"\n1:3\tEnd\t\"\""
	if entry := lastEntry(t, m); entry.isErr || entry.output != want {
		t.Errorf(":tokens output = %q (isErr %v), want %q", entry.output, entry.isErr, want)
	}

	m, _ = enter(t, m, ":tokens x @")
	entry := lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.output, "UnexpectedCharacter") {
		t.Errorf(":tokens output = %q (isErr %v), want an UnexpectedCharacter error", entry.output, entry.isErr)
	}
	if !strings.HasPrefix(entry.output, "1:1\tIdentifier\t\"x\"") {
		t.Errorf(":tokens should list the tokens before the error, got %q", entry.output)
	}

	m, _ = enter(t, m, ":bogus")
	if entry := lastEntry(t, m); !entry.isErr || entry.output != "Unknown command: :bogus" {
		t.Errorf("unknown command output = %q", entry.output)
	}

	m, _ = enter(t, m, ":clear")
	if len(m.history) != 0 {
		t.Errorf("history not cleared: %v", m.history)
	}
}

func TestREPLTabCompletion(t *testing.T) {
	m, _ := enter(t, newREPLModel(), "let counter: number;")

	tests := []struct {
		input string
		want  string
	}{
		{"cou", "counter"},
		{"x = re", "x = return"},
		{"1 + ", "1 + "},
		{"zzz", "zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m.textInput.SetValue(tt.input)
			model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
			if got := model.(replModel).textInput.Value(); got != tt.want {
				t.Errorf("completed %q to %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	m.textInput.SetValue("d")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if got := lastEntry(t, rm).output; got != "Completions: def, do" {
		t.Errorf("ambiguous completion output = %q", got)
	}
}

func TestREPLInputHistory(t *testing.T) {
	m, _ := enter(t, newREPLModel(), "a;")
	m, _ = enter(t, m, "b;")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "b;" {
		t.Errorf("first up = %q, want b;", got)
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "a;" {
		t.Errorf("second up = %q, want a;", got)
	}
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "" {
		t.Errorf("down past the end = %q, want empty", got)
	}
}

func TestREPLView(t *testing.T) {
	m := newREPLModel()
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before sizing = %q", got)
	}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = model.(replModel)
	m, _ = enter(t, m, "1;")
	view := m.View()
	if !strings.Contains(view, "(program (expr (number 1)))") {
		t.Errorf("View() does not show the parse result:\n%s", view)
	}
}
