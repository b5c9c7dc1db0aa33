package cli

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/eft_batch_service/pkg/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  `Migrate applies every pending up migration. The database URL defaults to PGSQL_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				viper.AutomaticEnv()
				databaseURL = viper.GetString("PGSQL_URL")
			}
			if databaseURL == "" {
				return errors.New("a database URL is required (--database-url or PGSQL_URL)")
			}
			return database.RunMigrations(databaseURL, migrationsPath, slog.Default())
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL")
	cmd.Flags().StringVar(&migrationsPath, "migrations", "file://migrations", "Migration source URL")
	return cmd
}
