package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newRelationsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relations [table...]",
		Short: "List foreign key relationships",
		Long: `Relations lists foreign keys between the named tables, or between all
tables when none are named. Keys leading outside the set are not shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			tables, err := selectTables(ctx, s, args)
			if err != nil {
				return err
			}

			model, err := s.introspector.EntityRelationshipModel(ctx, ui.NewProgressMonitor(nil), tables...)
			if err != nil {
				return err
			}
			if model.Len() == 0 {
				ui.PrintWarning("no relationships found")
				return nil
			}
			return ui.PrintTable(ui.RelationshipHeaders, ui.RelationshipRows(model))
		},
	}
}
