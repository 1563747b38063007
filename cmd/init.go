package cmd

import (
	"github.com/josephlewis42/revshell/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newInitCommand writes the default configuration to a directory.
func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Initialize the configuration in DIR, the current directory by default.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			osFs := afero.NewOsFs()
			if err := osFs.MkdirAll(dir, 0700); err != nil {
				return err
			}

			return config.Initialize(afero.NewBasePathFs(osFs, dir), a.logger)
		},
	}
}
