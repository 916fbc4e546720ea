package main

import (
	"fmt"

	"github.com/dhamidi/kestrel/format"
	"github.com/dhamidi/kestrel/lang/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the tokens of a kestrel source file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			tokens, tokErr := parser.Tokenize(source, filename)
			if err := format.NewTokenEncoder(cmd.OutOrStdout(), source).Encode(tokens); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if tokErr != nil {
				return fmt.Errorf("tokenize: %w", tokErr)
			}
			return nil
		},
	}
}
