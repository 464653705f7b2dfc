package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/config"
	"github.com/satishbabariya/ingres-go/internal/core/assembler"
	"github.com/satishbabariya/ingres-go/internal/statement"
	"github.com/satishbabariya/ingres-go/internal/ui"
	"github.com/satishbabariya/ingres-go/internal/watch"
)

func newRenderCommand(a *app) *cobra.Command {
	var watchFile bool
	var numbered bool

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render statement documents as Ingres SQL",
		Long: `Render reads YAML statement documents (select, insert, update or
delete, separated by ---) and prints the Ingres SQL for each, followed by
its bind arguments. No database connection is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []assembler.Option{assembler.WithDelimitIdentifiers(a.cfg.DelimitIdentifiers)}
			if numbered {
				opts = append(opts, assembler.WithPlaceholder(func(n int) string { return fmt.Sprintf("$%d", n) }))
			}
			asm := assembler.New(opts...)

			file := args[0]
			if !watchFile {
				return renderFile(asm, file)
			}

			w, err := watch.NewWatcher(file, func() error {
				if err := renderFile(asm, file); err != nil {
					ui.PrintError("%v", err)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			ui.PrintInfo("watching %s, press Ctrl+C to stop", file)
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-render whenever the file changes")
	cmd.Flags().BoolVar(&numbered, "numbered", false, "use $1, $2, ... placeholders instead of ?")

	return cmd
}

func renderFile(asm *assembler.Assembler, file string) error {
	stmts, err := statement.Load(config.AppFs, file)
	if err != nil {
		return err
	}

	for n, s := range stmts {
		q, err := s.Render(asm)
		if err != nil {
			return fmt.Errorf("statement %d: %w", n+1, err)
		}
		if n > 0 {
			fmt.Fprintln(ui.Out)
		}
		ui.PrintSQL(q.SQL, q.Args)
	}
	return nil
}
