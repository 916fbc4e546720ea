package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/kestrel/lang/ast"
	"github.com/dhamidi/kestrel/lang/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFileKeepsSymbolsOfLastGoodVersion(t *testing.T) {
	c := New("/tmp/kestrel_test")
	path := "/tmp/kestrel_test/main.kst"

	good := c.UpdateFile(path, []byte("class Dog {}\nlet dx: number;"))
	if good.ParseErr != nil {
		t.Fatalf("ParseErr = %v", good.ParseErr)
	}
	if good.Program == nil {
		t.Fatal("Program is nil")
	}
	if len(good.Symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(good.Symbols))
	}

	bad := c.UpdateFile(path, []byte("class Dog {}\nlet dx: number;\nd"))
	if bad.ParseErr == nil {
		t.Fatal("expected a parse error")
	}
	if bad.Program != nil {
		t.Error("Program should be nil after a failed parse")
	}
	if len(bad.Symbols) != 2 {
		t.Errorf("got %d symbols, want the 2 from the previous version", len(bad.Symbols))
	}
	if c.GetFile(path) != bad {
		t.Error("GetFile should return the latest version")
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.kst"), "let a: number = 1;")
	writeFile(t, filepath.Join(dir, "sub", "b.kst"), "let b = 2;")
	writeFile(t, filepath.Join(dir, ".hidden", "c.kst"), "let c: number;")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a source file")

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Path != filepath.Join(dir, "a.kst") || files[1].Path != filepath.Join(dir, "sub", "b.kst") {
		t.Errorf("files = %s, %s", files[0].Path, files[1].Path)
	}

	failed := c.Failed()
	if len(failed) != 1 || failed[0].Path != filepath.Join(dir, "sub", "b.kst") {
		t.Fatalf("Failed() = %v", failed)
	}
	perr, ok := failed[0].ParseErr.(*parser.Error)
	if !ok {
		t.Fatalf("ParseErr = %T, want *parser.Error", failed[0].ParseErr)
	}
	if perr.Kind != parser.TypeAnnotationExpected {
		t.Errorf("Kind = %v, want TypeAnnotationExpected", perr.Kind)
	}
	if perr.Pos.File != failed[0].Path {
		t.Errorf("Pos.File = %q, want %q", perr.Pos.File, failed[0].Path)
	}

	c.RemoveFile(filepath.Join(dir, "a.kst"))
	if len(c.Files()) != 1 {
		t.Errorf("got %d files after RemoveFile, want 1", len(c.Files()))
	}
}

func TestCompletionsAtPoint(t *testing.T) {
	c := New("/tmp/kestrel_test")
	path := "/tmp/kestrel_test/main.kst"
	c.UpdateFile(path, []byte("class Dog {}\ndef bark(): void {}\nlet dx: number;"))
	c.UpdateFile(path, []byte("class Dog {}\ndef bark(): void {}\nlet dx: number;\nd"))

	items := c.CompletionsAtPoint(path, 4, 1)
	want := []struct {
		label string
		kind  CompletionKind
	}{
		{"dx", CompletionKindVariable},
		{"def", CompletionKindKeyword},
		{"do", CompletionKindKeyword},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items %v, want %d", len(items), items, len(want))
	}
	for i, w := range want {
		if items[i].Label != w.label || items[i].Kind != w.kind {
			t.Errorf("item %d = %s/%d, want %s/%d", i, items[i].Label, items[i].Kind, w.label, w.kind)
		}
	}

	if items := c.CompletionsAtPoint(path, 1, 8); len(items) != 1 || items[0].Label != "Dog" {
		t.Errorf("completions after \"Do\" = %v, want Dog", items)
	}
	if items := c.CompletionsAtPoint("/nowhere.kst", 1, 0); items != nil {
		t.Errorf("completions for unknown file = %v, want nil", items)
	}
}

func TestSymbols(t *testing.T) {
	src := "class Dog extends Animal {\n" +
		"  def bark(times: number): [string] { let out: [string]; return out; }\n" +
		"}\n" +
		"for (let i: number = 0; ; ) { if (i > 1) { let inner: Map[string, Dog]; } }\n" +
		"def run() {}"
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}

	want := []Symbol{
		{"Dog", SymbolClass, "class Dog extends Animal"},
		{"bark", SymbolFunction, "def bark(times: number): [string]"},
		{"times", SymbolParameter, "times: number"},
		{"out", SymbolVariable, "out: [string]"},
		{"i", SymbolVariable, "i: number"},
		{"inner", SymbolVariable, "inner: Map[string, Dog]"},
		{"run", SymbolFunction, "def run(): void"},
	}
	got := Symbols(prog)
	if len(got) != len(want) {
		t.Fatalf("got %d symbols %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("symbol %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if Symbols(nil) != nil {
		t.Error("Symbols(nil) should be nil")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  ast.Type
		want string
	}{
		{&ast.PrimitiveType{Kind: ast.Boolean}, "boolean"},
		{&ast.VoidType{}, "void"},
		{&ast.ArrayType{Element: &ast.ClassType{Name: "Foo"}}, "[Foo]"},
		{&ast.GenericType{Base: "Pair", Args: []ast.Type{&ast.PrimitiveType{Kind: ast.Number}, &ast.PrimitiveType{Kind: ast.String}}}, "Pair[number, string]"},
		{&ast.FunctionType{Params: []ast.Type{&ast.PrimitiveType{Kind: ast.Number}}, Return: &ast.VoidType{}}, "(number) => void"},
	}

	for _, tt := range tests {
		if got := TypeString(tt.typ); got != tt.want {
			t.Errorf("TypeString(%#v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.kst")
	writeFile(t, path, "let x: number;")

	c := New(dir)
	w := NewFileWatcher(c, time.Hour)

	var changed []string
	var removed []string
	w.OnChange = func(f *FileInfo) { changed = append(changed, f.Path) }
	w.OnRemove = func(path string) { removed = append(removed, path) }

	w.scan()
	if len(changed) != 1 || changed[0] != path {
		t.Fatalf("changed = %v, want [%s]", changed, path)
	}

	w.scan()
	if len(changed) != 1 {
		t.Errorf("unchanged file was reparsed: %v", changed)
	}

	writeFile(t, path, "let x = 1;")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if len(changed) != 2 {
		t.Fatalf("changed = %v, want a second entry", changed)
	}
	if c.GetFile(path).ParseErr == nil {
		t.Error("expected the new content to fail to parse")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if len(removed) != 1 || removed[0] != path {
		t.Errorf("removed = %v, want [%s]", removed, path)
	}
	if c.GetFile(path) != nil {
		t.Error("removed file is still in the codebase")
	}
}
