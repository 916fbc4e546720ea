package main

import (
	"fmt"

	"github.com/dhamidi/kestrel/format"
	"github.com/dhamidi/kestrel/lang/ast"
	"github.com/dhamidi/kestrel/lang/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var indent int
	var expression bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a kestrel program (or stdin) and print its s-expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithMaxDepth(maxDepth)}
			if filename != "" {
				opts = append(opts, parser.WithFile(filename))
			}

			var node ast.Node
			if expression {
				node, err = parser.ParseExpression(source, opts...)
			} else {
				node, err = parser.ParseProgram(source, opts...)
			}
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "compact":
				encoder = format.NewSExprEncoder(cmd.OutOrStdout())
			case "pretty":
				encoder = format.NewSExprEncoder(cmd.OutOrStdout(), format.WithIndent(indent))
			case "json":
				encoder = format.NewASTJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "compact", "output format (compact, pretty, json)")
	cmd.Flags().IntVar(&indent, "indent", 2, "spaces per nesting level in pretty output")
	cmd.Flags().BoolVarP(&expression, "expr", "e", false, "parse a single expression instead of a program")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth before parsing fails")

	return cmd
}
