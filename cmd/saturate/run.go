package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gitrdm/gosaturate/pkg/rewrite"
)

var (
	rulesPath   string
	weightFlags []string
	showAll     bool
)

var runCmd = &cobra.Command{
	Use:   "run <term-json>",
	Short: "Saturate a term under a rule file and extract the best form",
	Long: `Saturates a JSON-encoded term under the rules in --rules (a JSON array
of {"name", "lhs", "rhs"} records), then extracts the minimum-cost form.
Costs default to node counting; --weight biases individual operators, e.g.

  saturate run --rules algebra.json --weight '*=2' --weight leaf=0 '<term>'

Weights may also come from a "weights" table in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, err := readTermArg(args[0])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(rulesPath)
		if err != nil {
			return fmt.Errorf("reading rules: %w", err)
		}
		rules, err := rewrite.DecodeRules(data)
		if err != nil {
			return err
		}

		cost, err := resolveCost()
		if err != nil {
			return err
		}

		results := rewrite.SaturateWith(term, rules, saturateOptions())
		logger.Debug("saturation finished",
			zap.Int("rules", len(rules)),
			zap.Int("forms", len(results)),
		)

		if showAll {
			for i, r := range results {
				fmt.Printf("%3d  ", i)
				termStyle.Print(r.String())
				costStyle.Printf("  cost=%d\n", cost(r))
			}
		}

		best, err := rewrite.ExtractBest(results, cost)
		if err != nil {
			return err
		}
		bestStyle.Println(best.String())
		costStyle.Printf("cost: %d  (from %d forms)\n", cost(best), len(results))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "JSON rule file (required)")
	runCmd.Flags().StringArrayVarP(&weightFlags, "weight", "w", nil, "operator weight as op=int, repeatable")
	runCmd.Flags().BoolVar(&showAll, "all", false, "list every discovered form with its cost")
	_ = runCmd.MarkFlagRequired("rules")
}

// resolveCost merges the config file's weights table with --weight flags
// (flags win) and builds the cost function; no weights at all means plain
// node counting.
func resolveCost() (rewrite.CostFunc, error) {
	weights := map[string]int{}
	for k, v := range viper.GetStringMap("weights") {
		switch n := v.(type) {
		case int:
			weights[k] = n
		case int64:
			weights[k] = int(n)
		case float64:
			weights[k] = int(n)
		default:
			return nil, fmt.Errorf("weight for %q is not a number", k)
		}
	}
	for _, spec := range weightFlags {
		op, val, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, expected op=int", spec)
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", spec, err)
		}
		weights[op] = n
	}

	if len(weights) == 0 {
		return rewrite.CostNodes, nil
	}
	return rewrite.CostWeighted(weights), nil
}
