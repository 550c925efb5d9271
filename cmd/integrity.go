package cmd

import (
	"errors"
	"fmt"

	"student-sync/core/config"
	"student-sync/core/database"
	"student-sync/core/logger"
	"student-sync/core/storage"
	"student-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd checks the stored students and optionally repairs them.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the student table and archive bucket",
	Long: `Checks the students table schema, lists natural keys stored more than once
and verifies the upload archive bucket.

Duplicate keys are skipped by every import and then pruned, so run this with
--fix before importing to keep one row per key.`,
	Args: cobra.NoArgs,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Delete duplicate rows and create the archive bucket")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var client storage.Client
	if cfg.Import.ArchiveUploads {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	svc := integrity.NewService(db, client, cfg.Storage, l)

	missing, err := svc.CheckSchema(ctx)
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	if len(missing) > 0 {
		l.Error("Students table is missing columns", zap.Strings("missing", missing))
	} else {
		l.Info("Schema OK")
	}

	groups, err := svc.CheckDuplicates(ctx)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}
	for _, g := range groups {
		l.Warn("Duplicate student",
			zap.String("name", g.Name),
			zap.Int("age", g.Age),
			zap.String("city", g.City),
			zap.Int("count", g.Count))
	}
	if len(groups) > 0 && fixFlag {
		deleted, err := svc.FixDuplicates(ctx, groups)
		if err != nil {
			return err
		}
		l.Info("Duplicates removed", zap.Int("deleted", deleted))
	} else {
		l.Info("Duplicate check finished", zap.Int("groups", len(groups)))
	}

	exists, err := svc.CheckStorage(ctx)
	switch {
	case errors.Is(err, integrity.ErrStorageUnavailable):
		l.Info("Upload archiving disabled, skipping storage check")
	case err != nil:
		return fmt.Errorf("storage check failed: %w", err)
	case !exists && fixFlag:
		if err := svc.FixStorage(ctx); err != nil {
			return err
		}
		l.Info("Archive bucket created", zap.String("bucket", cfg.Storage.Bucket))
	case !exists:
		l.Warn("Archive bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
	default:
		l.Info("Archive bucket OK", zap.String("bucket", cfg.Storage.Bucket))
	}

	if len(missing) > 0 {
		return errors.New("integrity check failed: students table is incomplete")
	}
	return nil
}
