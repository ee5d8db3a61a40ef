package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bitquill/optistream/pkg/cli"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatOutput == string(cli.FormatJSON) {
			info := map[string]any{
				"version": "dev",
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			return cli.Output(info, cli.OutputOptions{Format: cli.FormatJSON})
		}
		fmt.Printf("optistream dev (%s %s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
