package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <transcript>",
	Short: "Re-run the engine over a captured stream transcript",
	Long: `Feed a transcript captured with 'run --capture' back through the
reconstruction engine. Useful for debugging a pipeline run offline: the
replay is byte-identical to the live stream, including split lines and
malformed frames.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()

		res, streamErr := streamSession(cmd.Context(), f)
		if streamErr != nil {
			printf("stream aborted: %v\n", streamErr)
		}
		return writeResult(res)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
