package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/revshell/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// newHistoryCommand reports on the payloads rendered so far.
func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show a report of the rendered payloads.",
		Long: `Show a report of the rendered payloads.

Payloads are only recorded when record_history is enabled in the
configuration given with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configDir == "" {
				return errors.New("history requires --config")
			}
			cmd.SilenceUsage = true

			configuration, err := a.loadConfig()
			if err != nil {
				return err
			}

			report := logger.NewReport()
			fd, err := configuration.ReadHistoryLog()
			switch {
			case errors.Is(err, fs.ErrNotExist):
				a.logger.Debug("No history recorded yet")
			case err != nil:
				return err
			default:
				defer fd.Close()
				if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
					return fmt.Errorf("reading history: %w", err)
				}
			}

			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
