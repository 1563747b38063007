package cmd

import (
	"fmt"

	"github.com/josephlewis42/revshell/core/netif"
	"github.com/spf13/cobra"
)

// newInterfacesCommand lists the names usable as LHOST.
func newInterfacesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "Show the interface names and aliases accepted as LHOST.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			configuration, err := a.loadConfig()
			if err != nil {
				return err
			}
			printer, err := a.printer(cmd.OutOrStdout(), configuration)
			if err != nil {
				return err
			}

			resolver := netif.NewWithLister(configuration.Interfaces, a.lister)
			for _, name := range resolver.Names() {
				printer.Println(fmt.Sprintf("%s\t%s", printer.Sprint(ColorBoldGreen, name), resolver.Resolve(name)))
			}

			return nil
		},
	}
}
