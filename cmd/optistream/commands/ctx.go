package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bitquill/optistream/pkg/cli"
)

var (
	ctxBaseURL string
	ctxApp     string
	ctxUser    string
	ctxTimeout int
)

var ctxCmd = &cobra.Command{
	Use:   "ctx",
	Short: "Context configuration management",
}

var ctxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tSERVER\tAPP\tUSER")
		for _, name := range cfg.Names() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", current, name, ctx.BaseURL, ctx.App, ctx.User)
		}
		return w.Flush()
	},
}

var ctxAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Add(&cli.Context{
			Name:    args[0],
			BaseURL: ctxBaseURL,
			App:     ctxApp,
			User:    ctxUser,
			Timeout: ctxTimeout,
		})
		return cfg.Save()
	},
}

var ctxUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the active context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Use(args[0]); err != nil {
			return err
		}
		return cfg.Save()
	},
}

var ctxDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Delete(args[0]); err != nil {
			return err
		}
		return cfg.Save()
	},
}

func init() {
	ctxAddCmd.Flags().StringVar(&ctxBaseURL, "base-url", "", "pipeline server address")
	ctxAddCmd.Flags().StringVar(&ctxApp, "app", "app", "server-side app name")
	ctxAddCmd.Flags().StringVar(&ctxUser, "user", "cli_user", "user id sessions run under")
	ctxAddCmd.Flags().IntVar(&ctxTimeout, "timeout", 0, "request timeout in seconds")

	ctxCmd.AddCommand(ctxListCmd, ctxAddCmd, ctxUseCmd, ctxDeleteCmd)
	rootCmd.AddCommand(ctxCmd)
}
