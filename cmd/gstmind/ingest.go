package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gstmind/gstmind/internal/cli"
	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/ingest"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load invoice records from a CSV file",
		Long: `Read invoice records from a CSV file, run each one through the
cleaning pipeline, and insert the valid ones into the invoice store.
Records whose invoice number already exists are skipped, so re-running
an ingest is safe.`,
		RunE: runIngest,
	}

	cmd.Flags().String("file", "", "CSV file to ingest")
	cmd.Flags().String("dir", "./dataset", "directory to scan for a CSV file when --file is not set")

	return cmd
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		dir, _ := cmd.Flags().GetString("dir")
		found, err := ingest.FindCSV(dir)
		if err != nil {
			return err
		}
		path = found
	}

	common.LogInfo("starting ingestion", common.Fields{"file": path})

	records, err := ingest.ReadRecords(path)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(records)), "ingesting")
	report := ingest.NewLoader(store).Run(ctx, records, func() {
		_ = bar.Add(1)
	})

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Ingested %d of %d records (%d duplicates, %d invalid, %d failed)",
		report.Inserted, report.Total, report.Duplicate, report.Invalid, report.Failed)))
	return nil
}
