package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bitquill/optistream/pkg/adk"
)

var (
	runQueryFile string
	runCapture   string
	runSessionID string
	runBaseURL   string
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Submit a query and stream the pipeline run",
	Long: `Submit a SQL query to the pipeline and reassemble each stage's output
as it streams back. Interrupting the run (Ctrl-C) aborts the stream but
still reports every stage that completed or could be recovered from the
event log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := loadQuery(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cctx, err := cfg.Current()
		if err != nil {
			return err
		}

		opts := []adk.Option{}
		baseURL := cctx.BaseURL
		if runBaseURL != "" {
			baseURL = runBaseURL
		}
		if baseURL != "" {
			opts = append(opts, adk.WithBaseURL(baseURL))
		}
		if cctx.Timeout > 0 {
			opts = append(opts, adk.WithTimeout(time.Duration(cctx.Timeout)*time.Second))
		}
		client := adk.NewClient(opts...)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sessionID := runSessionID
		if sessionID == "" {
			sessionID = "cli-" + uuid.NewString()
		}
		if err := client.CreateSession(ctx, cctx.App, cctx.User, sessionID); err != nil {
			return err
		}
		printf("session %s\n", sessionID)

		body, err := client.Run(ctx, &adk.RunRequest{
			AppName:    cctx.App,
			UserID:     cctx.User,
			SessionID:  sessionID,
			NewMessage: adk.UserQuery(query),
		})
		if err != nil {
			return err
		}
		defer body.Close()

		var stream io.Reader = body
		if runCapture != "" {
			f, err := os.Create(runCapture)
			if err != nil {
				return fmt.Errorf("create capture file: %w", err)
			}
			defer f.Close()
			stream = io.TeeReader(body, f)
		}

		res, streamErr := streamSession(ctx, stream)
		if streamErr != nil {
			printf("stream aborted: %v\n", streamErr)
		}
		return writeResult(res)
	},
}

// loadQuery takes the query from the argument or --query-file.
func loadQuery(args []string) (string, error) {
	if len(args) == 1 && runQueryFile != "" {
		return "", fmt.Errorf("pass the query as an argument or with -f, not both")
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if runQueryFile != "" {
		data, err := os.ReadFile(runQueryFile)
		if err != nil {
			return "", fmt.Errorf("read query file: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no query given")
}

func init() {
	runCmd.Flags().StringVarP(&runQueryFile, "query-file", "f", "", "read the query from a file")
	runCmd.Flags().StringVar(&runCapture, "capture", "", "tee the raw stream to a transcript file")
	runCmd.Flags().StringVar(&runSessionID, "session", "", "reuse a server-side session id")
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "override the context's server address")
	rootCmd.AddCommand(runCmd)
}
