// kas-backup writes the persisted transaction collection to a backup
// file, the same payload the dashboard's export button serves.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"kas/internal/cli"
	"kas/internal/services"
	"kas/internal/store"
)

func main() {
	outDir := flag.String("out", ".", "directory the backup file is written to")
	flag.Parse()

	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	st := store.New()
	txService := services.NewTransactionService(st, result.Adapter)
	if err := txService.Load(ctx); err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}

	filename, data, err := txService.Export(ctx)
	if err != nil {
		logger.Error("Failed to build backup", "error", err)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("Failed to write backup file", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Backup written", "path", path, "bytes", len(data), "count", st.Len())
}
