// Package codebase tracks the kestrel source files of a directory tree and
// their parse results.
//
// A Codebase maps file paths to FileInfo values holding the latest content,
// the parsed *ast.Program or the parse error, and the symbols declared in
// the file. The language server feeds it editor buffers with UpdateFile;
// the check command fills it from disk with ScanAll and, in watch mode,
// keeps it current with a polling FileWatcher.
//
//	cb := codebase.New(".")
//	cb.ScanAll()
//	for _, f := range cb.Failed() {
//	    fmt.Println(f.ParseErr)
//	}
package codebase
