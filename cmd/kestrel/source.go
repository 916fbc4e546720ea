package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readSource returns the contents of the file named by args, or of stdin
// when args is empty or "-". The returned name is empty for stdin.
func readSource(cmd *cobra.Command, args []string) (name string, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return args[0], string(data), nil
}
