package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"student-sync/core/config"
	"student-sync/core/database"
	"student-sync/core/logger"
	"student-sync/core/storage"
	"student-sync/feature/student"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importChunkSize int
	importMatchMode string
)

// importCmd imports students from a file and deletes the ones it does not list.
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import students from a CSV or XLSX file",
	Long: `Import students from a CSV or XLSX file.

Rows are matched on (name, age, city). Matching students are kept, unknown
rows are inserted, and every student not present in the file is deleted.
Nothing is deleted when the file cannot be read completely.

The file may be a local path or an object reference (s3://bucket/key).
Without an argument the configured import.default_source is used.

Examples:
  # Import the default source
  import

  # Import a spreadsheet in chunks of 500 rows
  import data/students.xlsx --chunk-size 500

  # Match on name only so age and city changes become updates
  import s3://imports/students.csv --match name`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&importChunkSize, "chunk-size", 0, "Rows per chunk (default import.chunk_size)")
	importCmd.Flags().StringVar(&importMatchMode, "match", "", "Match mode: exact or name (default import.match_mode)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	if importMatchMode != "" {
		cfg.Import.MatchMode = importMatchMode
	}

	source := cfg.Import.DefaultSource
	if len(args) == 1 {
		source = args[0]
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Object storage is only needed for s3:// sources.
	var client storage.Client
	if storage.IsObjectURL(source) {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc, err := student.NewService(db, client, cfg.Storage, cfg.Import, l)
	if err != nil {
		return err
	}
	if err := svc.Prepare(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	l.Info("Importing students", zap.String("source", source), zap.String("match", cfg.Import.MatchMode))
	report, err := svc.Import(ctx, source, student.ImportOptions{ChunkSize: importChunkSize})
	if report.Status == "" {
		// Nothing was read.
		return err
	}

	report.Log(l)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("import interrupted, no records were deleted: %w", err)
		}
		return fmt.Errorf("import aborted, no records were deleted: %w", err)
	}
	return nil
}
