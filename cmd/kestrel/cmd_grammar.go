package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/kestrel/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Source)
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarTokensCmd())
	cmd.AddCommand(newGrammarRecognizeCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify the embedded grammar or an EBNF grammar file",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g ebnf.Grammar
			var err error
			if len(args) == 1 {
				g, err = grammar.LoadFile(args[0])
			} else {
				g, err = grammar.Load()
				if startProduction == "" {
					startProduction = grammar.Start
				}
			}
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks the syntax of a grammar file)")

	return cmd
}

func newGrammarTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "List the tokens the grammar's lexical productions find in a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := grammarTokens(cmd, args)
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return err
		},
	}
}

func newGrammarRecognizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recognize [file]",
		Short: "Check a source file against the grammar alone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := grammarTokens(cmd, args)
			if err != nil {
				return err
			}

			g, err := grammar.Load()
			if err != nil {
				return err
			}
			if err := grammar.Recognize(g, tokens, grammar.Start); err != nil {
				return fmt.Errorf("recognize: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func grammarTokens(cmd *cobra.Command, args []string) ([]grammar.Token, error) {
	filename, source, err := readSource(cmd, args)
	if err != nil {
		return nil, err
	}

	g, err := grammar.Load()
	if err != nil {
		return nil, err
	}

	tokens, err := grammar.NewLexer(g, []byte(source), filename).Tokenize()
	if err != nil {
		return tokens, fmt.Errorf("tokenize: %w", err)
	}
	return tokens, nil
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
