// Command saturate is a thin command-line front end for the rewrite
// engine: it canonicalizes JSON-encoded terms, saturates them under a JSON
// rule file, extracts minimum-cost forms, and offers an interactive loop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gitrdm/gosaturate/pkg/rewrite"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "saturate",
	Short: "saturate - equality saturation over JSON-encoded symbolic terms",
	Long: `saturate explores the space of term forms reachable by rewrite rules
and picks the cheapest one. Terms and rules travel as JSON tagged records:

  {"var": "x"}
  {"const": 3}
  {"op": "+", "args": [{"var": "x"}, {"const": 0}]}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return err
		}

		viper.SetDefault("max_iters", rewrite.DefaultMaxIters)
		viper.SetDefault("seen_limit", rewrite.DefaultSeenLimit)
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
			logger.Debug("loaded config", zap.String("file", viper.ConfigFileUsed()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with default bounds and weights")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("max-iters", rewrite.DefaultMaxIters, "saturation iteration bound")
	rootCmd.PersistentFlags().Int("seen-limit", rewrite.DefaultSeenLimit, "distinct canonical forms bound")
	_ = viper.BindPFlag("max_iters", rootCmd.PersistentFlags().Lookup("max-iters"))
	_ = viper.BindPFlag("seen_limit", rootCmd.PersistentFlags().Lookup("seen-limit"))

	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rewrite.GetVersion())
	},
}

// saturateOptions assembles the engine bounds from viper-resolved config.
func saturateOptions() rewrite.SaturateOptions {
	opts := rewrite.SaturateOptions{
		MaxIters:  viper.GetInt("max_iters"),
		SeenLimit: viper.GetInt("seen_limit"),
	}
	if verbose {
		opts.Logger = logger
	}
	return opts
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
