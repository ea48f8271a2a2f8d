package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gstmind/gstmind/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the invoice store schema to the latest
version. Other commands run pending migrations automatically; this
exists to prepare a database ahead of time.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	slog.Info("Starting database migration",
		"database", viper.GetString("database.path"))

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Println(cli.FormatSuccess("Invoice store schema is up to date"))
	return nil
}
