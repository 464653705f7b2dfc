package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/ingres-go/internal/config"
	"github.com/satishbabariya/ingres-go/internal/ui"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the connection settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			password := ""
			if c.Password != "" {
				password = "********"
			}
			return ui.PrintTable([]string{"Setting", "Value"}, [][]string{
				{"data source", c.Settings().DisplayURL()},
				{config.KeyHost, c.Host},
				{config.KeyPort, strconv.Itoa(c.Port)},
				{config.KeyUser, c.User},
				{config.KeyPassword, password},
				{config.KeyDatabase, c.Database},
				{config.KeySchema, c.Schema},
				{config.KeyURLExtension, c.URLExtension},
				{config.KeyDelimitIdentifiers, strconv.FormatBool(c.DelimitIdentifiers)},
				{config.KeyTimeout, c.Timeout.String()},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration, without the password, to the user config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SaveConfig(a.cfg)
			if err != nil {
				return err
			}
			ui.PrintSuccess("configuration saved to %s", path)
			return nil
		},
	})

	return cmd
}
