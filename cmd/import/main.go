// Package main imports Airtable CSV exports into the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"printstock/internal/config"
	"printstock/internal/importer"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/infrastructure/storage/postgres/catalog_repo"
	"printstock/internal/infrastructure/storage/postgres/edition_repo"
	"printstock/pkg/logger"
)

func main() {
	printsPath := flag.String("prints", "", "path to the prints CSV export")
	distributorsPath := flag.String("distributors", "", "path to the distributors CSV export")
	editionsPath := flag.String("editions", "", "path to the editions CSV export")
	flag.Parse()

	if *printsPath == "" || *distributorsPath == "" || *editionsPath == "" {
		fmt.Println("usage: import -prints <file> -distributors <file> -editions <file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	imp, err := importer.New(
		txManager,
		catalog_repo.NewPrintRepo(txManager),
		catalog_repo.NewDistributorRepo(txManager),
		edition_repo.NewRepo(txManager),
	)
	if err != nil {
		log.Fatalw("failed to create importer", "error", err)
	}

	stats, err := imp.Run(ctx, importer.Options{
		PrintsPath:       *printsPath,
		DistributorsPath: *distributorsPath,
		EditionsPath:     *editionsPath,
	})
	if err != nil {
		log.Fatalw("import failed", "error", err)
	}

	log.Infow("import completed",
		"rows_processed", stats.RowsProcessed,
		"prints_created", stats.PrintsCreated,
		"prints_updated", stats.PrintsUpdated,
		"distributors_created", stats.DistributorsCreated,
		"distributors_updated", stats.DistributorsUpdated,
		"editions_created", stats.EditionsCreated,
		"editions_skipped", stats.EditionsSkipped,
	)
}
