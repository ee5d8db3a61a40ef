package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitquill/optistream/pkg/cli"
)

var (
	verbose      bool
	formatOutput string
	outputFile   string
	jqExpr       string
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "optistream",
	Short: "Stream and reassemble pipeline stage outputs",
	Long: `optistream is a client for the SQL-optimization agent pipeline.

The pipeline's stages stream their output as fragmented SSE events;
optistream reassembles exactly one structured record per stage and prints
the results.

Commands:
  run       Submit a query and stream the pipeline run
  replay    Re-run the engine over a captured stream transcript
  ctx       Context configuration management
  version   Version information

Examples:
  optistream ctx add prod --base-url https://pipeline.internal --user alice
  optistream ctx use prod
  optistream run "SELECT * FROM analytics.events" --capture run.sse
  optistream replay run.sse --format json --jq '.stages[].kind'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", "yaml", "output format: yaml, json, raw")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "o", "o", "", "output file path")
	rootCmd.PersistentFlags().StringVar(&jqExpr, "jq", "", "jq expression applied to the result")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

// loadConfig honors the --config override.
func loadConfig() (*cli.Config, error) {
	if configPath != "" {
		return cli.LoadConfigWithPath(configPath)
	}
	return cli.LoadConfig()
}

// writeResult applies the --jq filter if set and prints per --format/-o.
func writeResult(result any) error {
	if jqExpr != "" {
		values, err := cli.ApplyFilter(jqExpr, result)
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := cli.Output(v, cli.OutputOptions{Format: cli.OutputFormat(formatOutput), File: outputFile}); err != nil {
				return err
			}
		}
		return nil
	}
	return cli.Output(result, cli.OutputOptions{Format: cli.OutputFormat(formatOutput), File: outputFile})
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
