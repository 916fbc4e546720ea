package format

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/kestrel/lang/parser"
)

var update = flag.Bool("update", false, "rewrite .sexpr golden files from the current output")
var testFilter = flag.String("filter", "", "filter golden files by substring match on filename")

// TestGolden parses every testdata/*.kst file and compares its compact
// s-expression with the .sexpr file next to it.
// Use -filter to pick files: go test ./format -run TestGolden -filter=loop
func TestGolden(t *testing.T) {
	var files []string
	err := filepath.WalkDir("testdata", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".kst") {
			if *testFilter != "" && !strings.Contains(path, *testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testdata directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .kst files matching filter %q", *testFilter)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".kst")
		t.Run(name, func(t *testing.T) {
			runGoldenTest(t, file)
		})
	}
}

func runGoldenTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	prog, err := parser.ParseProgram(string(source), parser.WithFile(filename))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	got := CompactSExpr(prog)

	goldenPath := strings.TrimSuffix(filename, ".kst") + ".sexpr"
	if *update {
		if err := os.WriteFile(goldenPath, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		return
	}
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	if want := strings.TrimSpace(string(golden)); got != want {
		t.Errorf("output mismatch\ngot:  %s\nwant: %s", got, want)
	}

	if pretty := normalize(PrettySExpr(prog, 2)); pretty != got {
		t.Errorf("pretty output does not normalize to compact\ngot:  %s\nwant: %s", pretty, got)
	}
}
