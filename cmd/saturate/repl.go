package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gosaturate/pkg/rewrite"
)

const historyFile = ".gosaturate_history"

var errStyle = color.New(color.FgRed, color.Bold)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive term exploration loop",
	Long: `Starts an interactive loop. Enter a JSON term to see its canonical
form and signature. Commands:

  :rules <file>   load a JSON rule file for :best
  :best <term>    saturate the term and print the cheapest form
  :quit           exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

func runRepl() error {
	fmt.Printf("gosaturate %s, :quit to exit\n", rewrite.GetVersion())

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var rules []*rewrite.Rule

	for {
		line, err := ln.Prompt("sat> ")
		if err != nil {
			// liner returns an error on EOF and on aborted input.
			fmt.Println()
			return nil
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := replCommand(input, &rules); quit {
				return nil
			}
			continue
		}

		term, err := rewrite.DecodeTerm([]byte(input))
		if err != nil {
			errStyle.Fprintln(os.Stderr, err.Error())
			continue
		}
		cf := rewrite.Canonicalize(term)
		termStyle.Println(cf.Expr.String())
		sigStyle.Printf("sig: %s\n", cf.Sig)
	}
}

// replCommand handles a colon command; it reports whether the loop should
// terminate.
func replCommand(input string, rules *[]*rewrite.Rule) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ":quit", ":q":
		return true

	case ":rules":
		if rest == "" {
			errStyle.Fprintln(os.Stderr, "usage: :rules <file>")
			return false
		}
		data, err := os.ReadFile(rest)
		if err != nil {
			errStyle.Fprintln(os.Stderr, err.Error())
			return false
		}
		loaded, err := rewrite.DecodeRules(data)
		if err != nil {
			errStyle.Fprintln(os.Stderr, err.Error())
			return false
		}
		*rules = loaded
		fmt.Printf("loaded %d rules\n", len(loaded))

	case ":best":
		if len(*rules) == 0 {
			errStyle.Fprintln(os.Stderr, "no rules loaded, use :rules <file> first")
			return false
		}
		term, err := rewrite.DecodeTerm([]byte(rest))
		if err != nil {
			errStyle.Fprintln(os.Stderr, err.Error())
			return false
		}
		results := rewrite.SaturateWith(term, *rules, saturateOptions())
		best, err := rewrite.ExtractBest(results, rewrite.CostNodes)
		if err != nil {
			errStyle.Fprintln(os.Stderr, err.Error())
			return false
		}
		bestStyle.Println(best.String())
		costStyle.Printf("cost: %d  (from %d forms)\n", rewrite.CostNodes(best), len(results))

	default:
		fmt.Println("unknown command. Type :quit to exit.")
	}
	return false
}
