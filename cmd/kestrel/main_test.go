package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/kestrel/grammar"
	"github.com/dhamidi/kestrel/lang/parser"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "compact program",
			stdin: "1 + 2 * 3;",
			args:  []string{"parse"},
			want:  `(program (expr (binary "+" (number 1) (binary "*" (number 2) (number 3)))))` + "\n",
		},
		{
			name:  "expression",
			stdin: "f()()",
			args:  []string{"parse", "--expr"},
			want:  "(call (call (id f)))\n",
		},
		{
			name:  "pretty program",
			stdin: "12;",
			args:  []string{"parse", "--format", "pretty"},
			want:  "(program\n  (expr\n    (number 12)))\n",
		},
		{
			name:  "json",
			stdin: "1;",
			args:  []string{"parse", "--format", "json"},
			want:  "{\n  \"kind\": \"program\",\n  \"children\": [\n    {\n      \"kind\": \"expr\",\n      \"children\": [\n        {\n          \"kind\": \"number\",\n          \"children\": [\n            {\n              \"kind\": \"atom\",\n              \"value\": \"1\"\n            }\n          ]\n        }\n      ]\n    }\n  ]\n}\n",
		},
		{
			name:  "pretty with indent",
			stdin: "12;",
			args:  []string{"parse", "-f", "pretty", "--indent", "4"},
			want:  "(program\n    (expr\n        (number 12)))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	_, err := run(t, "let x = 5;", "parse")
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want a *parser.Error", err)
	}
	if perr.Kind != parser.TypeAnnotationExpected {
		t.Errorf("Kind = %v, want TypeAnnotationExpected", perr.Kind)
	}

	_, err = run(t, "((((1))))", "parse", "--expr", "--max-depth", "2")
	if !errors.As(err, &perr) || perr.Kind != parser.NestingTooDeep {
		t.Errorf("error = %v, want NestingTooDeep", err)
	}

	if _, err := run(t, "1;", "parse", "--format", "xml"); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("error = %v, want unknown format", err)
	}
}

func TestParseCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.kst")
	if err := os.WriteFile(path, []byte("let x = 5;"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "", "parse", path)
	if err == nil || !strings.Contains(err.Error(), path+":1:7: TypeAnnotationExpected") {
		t.Errorf("error = %v, want a position prefixed with the file name", err)
	}
}

func TestTokensCommand(t *testing.T) {
	got, err := run(t, "x;", "tokens")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	want := "1:1\tIdentifier\t\"x\"\n1:2\t;\t\";\"\n1:3\tEnd\t\"\"\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got, err = run(t, "x 'open", "tokens")
	var perr *parser.Error
	if !errors.As(err, &perr) || perr.Kind != parser.UnterminatedString {
		t.Errorf("error = %v, want UnterminatedString", err)
	}
	if got != "1:1\tIdentifier\t\"x\"\n" {
		t.Errorf("output = %q, want the tokens before the error", got)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.kst")
	bad := filepath.Join(dir, "nested", "bad.kst")
	if err := os.MkdirAll(filepath.Dir(bad), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, []byte("class A {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("5 = 3;"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "", "check", good)
	if err != nil {
		t.Fatalf("check good file: error = %v", err)
	}
	if got != "1 files ok\n" {
		t.Errorf("output = %q", got)
	}

	got, err = run(t, "", "check", dir)
	if err == nil || err.Error() != "check: 1 of 2 files failed to parse" {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(got, bad+":1:1: InvalidAssignmentTarget") {
		t.Errorf("output = %q, want the diagnostic of %s", got, bad)
	}

	if _, err := run(t, "", "check", filepath.Join(dir, "missing.kst")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := run(t, "", "check", "--watch", dir, good); err == nil {
		t.Error("expected --watch to reject more than one path")
	}
}

func TestGrammarCommands(t *testing.T) {
	got, err := run(t, "", "grammar")
	if err != nil {
		t.Fatalf("grammar: error = %v", err)
	}
	if got != grammar.Source {
		t.Error("grammar did not print the embedded grammar")
	}

	if _, err := run(t, "", "grammar", "check"); err != nil {
		t.Errorf("grammar check: error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.ebnf")
	if err := os.WriteFile(bad, []byte("A = B .\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "grammar", "check", bad); err != nil {
		t.Errorf("grammar check without --start only checks syntax, got %v", err)
	}
	if _, err := run(t, "", "grammar", "check", "--start", "A", bad); err == nil {
		t.Error("expected verification of an undefined production to fail")
	}

	got, err = run(t, "let x: number;", "grammar", "recognize")
	if err != nil || got != "ok\n" {
		t.Errorf("recognize = %q, %v", got, err)
	}
	if _, err := run(t, "let x: number", "grammar", "recognize"); err == nil {
		t.Error("expected recognize to reject a missing semicolon")
	}

	got, err = run(t, "x;", "grammar", "tokens")
	if err != nil {
		t.Fatalf("grammar tokens: error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[2], `EOF ""`) {
		t.Errorf("grammar tokens output = %q", got)
	}
}

func TestPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	printErrors(&buf, errors.New("single"))
	if buf.String() != "single\n" {
		t.Errorf("printErrors = %q", buf.String())
	}
}
