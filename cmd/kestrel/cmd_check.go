package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dhamidi/kestrel/codebase"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse kestrel files and directories and report syntax errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("check: --watch takes a single directory")
				}
				return runWatch(cmd, args[0], interval)
			}
			return runCheck(cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking the directory as files change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval in watch mode")

	return cmd
}

func runCheck(out io.Writer, paths []string) error {
	var files []*codebase.FileInfo

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			cb := codebase.New(path)
			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", path, err)
			}
			files = append(files, cb.Files()...)
			continue
		}

		cb := codebase.New(filepath.Dir(path))
		f, err := cb.ScanFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, f)
	}

	failed := 0
	for _, f := range files {
		log.Debugf("checked %s", f.Path)
		if f.ParseErr != nil {
			failed++
			fmt.Fprintln(out, f.ParseErr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("check: %d of %d files failed to parse", failed, len(files))
	}
	fmt.Fprintf(out, "%d files ok\n", len(files))
	return nil
}

func runWatch(cmd *cobra.Command, dir string, interval time.Duration) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("check: %s is not a directory", dir)
	}

	out := cmd.OutOrStdout()
	watcher := codebase.NewFileWatcher(codebase.New(dir), interval)
	watcher.OnChange = func(f *codebase.FileInfo) {
		if f.ParseErr != nil {
			fmt.Fprintln(out, f.ParseErr)
			return
		}
		fmt.Fprintf(out, "%s: ok\n", f.Path)
	}
	watcher.OnRemove = func(path string) {
		fmt.Fprintf(out, "%s: removed\n", path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Noticef("watching %s every %s", dir, interval)
	watcher.Start()
	<-ctx.Done()
	watcher.Stop()
	return nil
}
