package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/core/introspection/domain"
	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newDescribeCommand(a *app) *cobra.Command {
	var markdown, noIndexes bool

	cmd := &cobra.Command{
		Use:   "describe [table...]",
		Short: "Describe columns and indexes of tables",
		Long: `Describe prints the columns, primary key and unique indexes of the
named tables or views. Without arguments every table and view is described.`,
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

			var flags domain.MetadataFlags
			if !noIndexes {
				flags |= domain.Indices
			}

			mds, err := s.introspector.TableMetadata(ctx, ui.NewProgressMonitor(nil), flags, tables...)
			if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
				return err
			}
			for _, md := range mds {
				if err := printMetadata(md, markdown); err != nil {
					return err
				}
			}
			if err != nil {
				ui.PrintWarning("stopped after %d of %d tables: %v", len(mds), len(tables), err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the description as markdown")
	cmd.Flags().BoolVar(&noIndexes, "no-indexes", false, "skip primary keys and indexes")

	return cmd
}

// selectTables returns the catalog entries named in names, or all of them
// when names is empty.
func selectTables(ctx context.Context, s *session, names []string) ([]domain.TableInfo, error) {
	infos, err := s.introspector.TableInfos(ctx, nil, domain.AllTableTypes)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return infos, nil
	}

	byName := make(map[string]domain.TableInfo, len(infos))
	for _, t := range infos {
		byName[strings.ToLower(t.Name)] = t
	}

	out := make([]domain.TableInfo, 0, len(names))
	var missing []string
	for _, name := range names {
		t, ok := byName[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		out = append(out, t)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown table: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func printMetadata(md domain.TableMetadata, markdown bool) error {
	if markdown {
		return ui.PrintMarkdown(ui.DescribeMarkdown(md))
	}

	ui.PrintSection(fmt.Sprintf("%s %s", md.Table.Type, md.Table.QualifiedName()))
	if err := ui.PrintTable(ui.ColumnHeaders, ui.ColumnRows(md)); err != nil {
		return err
	}
	if len(md.Indexes) > 0 {
		return ui.PrintTable(ui.IndexHeaders, ui.IndexRows(md))
	}
	return nil
}
