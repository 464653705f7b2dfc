package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newProceduresCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "procedures",
		Short: "List stored procedures with parameters and return shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			procs, err := s.introspector.StoredProcedures(ctx, ui.NewProgressMonitor(nil))
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				ui.PrintWarning("no stored procedures found")
				return nil
			}
			return ui.PrintTable(ui.ProcedureHeaders, ui.ProcedureRows(procs))
		},
	}
}
