// Command api runs the reconciliation review server.
package main

import (
	"flag"
	"os"

	"github.com/logistiga/bank-reconciliation/internal/api"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/config"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/logging"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("open ledger database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, repo, logger)

	if err := server.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
