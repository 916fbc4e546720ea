// Package lsp serves kestrel sources over the Language Server Protocol.
//
// The server keeps a codebase.Codebase in sync with the editor's buffers,
// publishes a diagnostic for every file that fails to parse and offers
// keyword and symbol completion.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/kestrel/codebase"
	"github.com/dhamidi/kestrel/lang/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "kestrel"

var log = commonlog.GetLogger("kestrel.lsp")

type LSPServer struct {
	codebase *codebase.Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		codebase: codebase.New("."),
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = codebase.New(rootDir)
	log.Infof("workspace root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		log.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	log.Infof("scanned %d files, %d with errors", len(ls.codebase.Files()), len(ls.codebase.Failed()))
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, f)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *codebase.FileInfo
	if params.Text != nil {
		f = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		f, err = ls.codebase.ScanFile(path)
		if err != nil {
			log.Errorf("read %s: %s", path, err)
			return nil
		}
	}
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := byteColumn(file.Content, line, int(params.Position.Character))

	completions := ls.codebase.CompletionsAtPoint(path, line, col)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		item := protocol.CompletionItem{
			Label: c.Label,
			Kind:  &kind,
		}
		if c.Detail != "" {
			detail := c.Detail
			item.Detail = &detail
		}
		items = append(items, item)
	}

	return items, nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, f *codebase.FileInfo) {
	diagnostics := Diagnostics(f)
	if len(diagnostics) > 0 {
		log.Debugf("%s: %s", f.Path, f.ParseErr)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics converts the parse error of f into LSP diagnostics. The
// result is empty, never nil, when f parsed.
func Diagnostics(f *codebase.FileInfo) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if f == nil || f.ParseErr == nil {
		return diagnostics
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	diag := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  f.ParseErr.Error(),
	}

	var perr *parser.Error
	if errors.As(f.ParseErr, &perr) {
		start := position(f.Content, perr.Pos.Offset)
		end := start
		if perr.Pos.Offset < len(f.Content) && f.Content[perr.Pos.Offset] != '\n' {
			end.Character++
		}
		diag.Range = protocol.Range{Start: start, End: end}
		diag.Code = &protocol.IntegerOrString{Value: perr.Kind.String()}
		diag.Message = perr.Message
	}

	return append(diagnostics, diag)
}

// position maps a byte offset to a 0-based line and a character counted in
// UTF-16 code units.
func position(content []byte, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	lineStart := 0
	var line protocol.UInteger
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	var character protocol.UInteger
	for _, r := range string(content[lineStart:offset]) {
		character += protocol.UInteger(utf16.RuneLen(r))
	}
	return protocol.Position{Line: line, Character: character}
}

// byteColumn maps a UTF-16 character offset on a 1-based line to a byte
// offset into that line.
func byteColumn(content []byte, line, character int) int {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return 0
	}
	lineContent := lines[line-1]

	units := 0
	for i, r := range lineContent {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(lineContent)
}

func toProtocolKind(kind codebase.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case codebase.CompletionKindClass:
		return protocol.CompletionItemKindClass
	case codebase.CompletionKindFunction:
		return protocol.CompletionItemKindFunction
	case codebase.CompletionKindVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindKeyword
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
