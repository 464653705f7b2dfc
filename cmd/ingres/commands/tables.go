package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newTablesCommand(a *app) *cobra.Command {
	var onlyTables, onlyViews bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables and views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := domain.AllTableTypes
			switch {
			case onlyTables && !onlyViews:
				kinds = domain.Tables
			case onlyViews && !onlyTables:
				kinds = domain.Views
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			s, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			infos, err := s.introspector.TableInfos(ctx, ui.NewProgressMonitor(nil), kinds)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				ui.PrintWarning("no tables found")
				return nil
			}
			return ui.PrintTable(ui.TableInfoHeaders, ui.TableInfoRows(infos))
		},
	}

	cmd.Flags().BoolVar(&onlyTables, "tables", false, "list base tables only")
	cmd.Flags().BoolVar(&onlyViews, "views", false, "list views only")

	return cmd
}
