package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gosaturate/pkg/rewrite"
)

var (
	termStyle = color.New(color.FgCyan, color.Bold)
	sigStyle  = color.New(color.FgYellow)
	bestStyle = color.New(color.FgGreen, color.Bold)
	costStyle = color.New(color.FgBlue)
)

var canonCmd = &cobra.Command{
	Use:   "canon <term-json>",
	Short: "Print the canonical form and signature of a term",
	Long: `Canonicalizes a JSON-encoded term: alpha-renames variables, reorders
commutative operands, and prints the resulting form with its signature.
Pass "-" to read the term from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, err := readTermArg(args[0])
		if err != nil {
			return err
		}

		cf := rewrite.Canonicalize(term)
		termStyle.Println(cf.Expr.String())
		sigStyle.Printf("sig: %s\n", cf.Sig)
		return nil
	},
}

// readTermArg decodes a term from an inline JSON argument, or from stdin
// when the argument is "-".
func readTermArg(arg string) (rewrite.Expr, error) {
	data := []byte(arg)
	if arg == "-" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}
	return rewrite.DecodeTerm(data)
}
