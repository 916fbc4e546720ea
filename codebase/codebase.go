package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/kestrel/lang/ast"
	"github.com/dhamidi/kestrel/lang/parser"
)

// Ext is the file extension of kestrel sources.
const Ext = ".kst"

// Codebase keeps the parse result of every known source file. It is safe
// for concurrent use.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	Program  *ast.Program // nil when ParseErr is set
	ParseErr error

	// Symbols come from the last version of the file that parsed, so they
	// survive while the file is being edited.
	Symbols []Symbol
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every kestrel file below the root directory, skipping
// hidden directories.
func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != c.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			c.ScanFile(path)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new text of path and records the result.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	prog, parseErr := parser.ParseProgram(string(content), parser.WithFile(path))

	c.mu.Lock()
	defer c.mu.Unlock()

	f := &FileInfo{
		Path:     path,
		Content:  content,
		Program:  prog,
		ParseErr: parseErr,
	}
	if parseErr == nil {
		f.Symbols = Symbols(prog)
	} else if prev := c.files[path]; prev != nil {
		f.Symbols = prev.Symbols
	}
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns all known files sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Failed returns the files whose last parse failed, sorted by path.
func (c *Codebase) Failed() []*FileInfo {
	var failed []*FileInfo
	for _, f := range c.Files() {
		if f.ParseErr != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindClass
	CompletionKindFunction
	CompletionKindVariable
)

type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// CompletionsAtPoint offers keywords and the names declared in path that
// start with the identifier ending at line (1-based) and column (0-based
// byte index into the line).
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	prefix := identifierBefore(f.Content, line, column)

	var items []CompletionItem
	seen := make(map[string]bool)
	for _, sym := range f.Symbols {
		if seen[sym.Name] || !strings.HasPrefix(sym.Name, prefix) {
			continue
		}
		seen[sym.Name] = true
		items = append(items, CompletionItem{
			Label:  sym.Name,
			Kind:   sym.Kind.completionKind(),
			Detail: sym.Detail,
		})
	}
	for _, kw := range parser.Keywords() {
		if seen[kw] || !strings.HasPrefix(kw, prefix) {
			continue
		}
		seen[kw] = true
		items = append(items, CompletionItem{
			Label: kw,
			Kind:  CompletionKindKeyword,
		})
	}
	return items
}

func identifierBefore(content []byte, line, column int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	lineContent := lines[line-1]
	if column > len(lineContent) {
		column = len(lineContent)
	}

	start := column
	for start > 0 && isIdentByte(lineContent[start-1]) {
		start--
	}
	return lineContent[start:column]
}

func isIdentByte(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
