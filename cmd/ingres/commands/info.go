package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the data source and server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.introspector.ServerVersion(ctx)
			if err != nil {
				return err
			}

			identity, err := s.introspector.SupportsIdentityColumns(ctx)
			if err != nil {
				return err
			}

			ui.PrintHeader("Ingres "+v.String(), s.adapter.DataSource())
			if identity {
				ui.PrintSuccess("identity columns supported")
			} else {
				ui.PrintInfo("identity columns not supported")
			}
			return nil
		},
	}
}
