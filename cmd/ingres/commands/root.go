// Package commands implements CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satishbabariya/ingres-go/internal/config"
	"github.com/satishbabariya/ingres-go/internal/debug"
)

// app carries state shared by all commands of one invocation.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "ingres",
		Short: "Inspect Ingres catalogs and render Ingres SQL",
		Long: `ingres reads table, column, index, relationship and stored procedure
metadata from the Ingres system catalogs, and renders statement documents
into Ingres SQL.

Connection settings come from flags, INGRES_GO_* environment variables,
.env files and .ingres-go.yaml, in decreasing priority.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.v)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			a.cfg = cfg
			debug.Init(cfg.Debug)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("host", "", "Ingres server host")
	flags.Int("port", 0, "Ingres listen port (default 21071)")
	flags.StringP("user", "u", "", "login user (default admin)")
	flags.String("password", "", "login password; prompted when empty")
	flags.StringP("database", "d", "", "database name")
	flags.String("schema", "", "schema to introspect (default: the user)")
	flags.String("url-extension", "", "extra attributes appended to the connection string")
	flags.String("dsn", "", "raw ODBC connection string, replaces the generated one")
	flags.String("driver", "", "database/sql driver name")
	flags.Duration("timeout", 0, "timeout for database commands (default 30s)")
	flags.Bool("debug", false, "enable debug logging")
	_ = flags.MarkHidden("driver")

	for key, flag := range map[string]string{
		config.KeyHost:           "host",
		config.KeyPort:           "port",
		config.KeyUser:           "user",
		config.KeyPassword:       "password",
		config.KeyDatabase:       "database",
		config.KeySchema:         "schema",
		config.KeyURLExtension:   "url-extension",
		config.KeyDataSourceName: "dsn",
		config.KeyDriver:         "driver",
		config.KeyTimeout:        "timeout",
		config.KeyDebug:          "debug",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newTablesCommand(a))
	rootCmd.AddCommand(newDescribeCommand(a))
	rootCmd.AddCommand(newRelationsCommand(a))
	rootCmd.AddCommand(newProceduresCommand(a))
	rootCmd.AddCommand(newInfoCommand(a))
	rootCmd.AddCommand(newRenderCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
