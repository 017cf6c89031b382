package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/pkg/logger"
)

// Options names the three export files of one Airtable snapshot.
type Options struct {
	PrintsPath       string
	DistributorsPath string
	EditionsPath     string
}

// Stats summarizes one import run.
type Stats struct {
	RowsProcessed       int
	PrintsCreated       int
	PrintsUpdated       int
	DistributorsCreated int
	DistributorsUpdated int
	EditionsCreated     int
	EditionsSkipped     int
}

// Importer loads cleaned Airtable CSV exports into the database. The whole
// run happens in one transaction; a failed run leaves no partial data.
type Importer struct {
	txManager    *postgres.TxManager
	batch        *postgres.BatchInserter
	syncLog      *postgres.SyncLogRepo
	audit        *postgres.AuditService
	prints       artprint.Repository
	distributors distributor.Repository
	editions     edition.Repository
}

// New creates an importer.
func New(
	txManager *postgres.TxManager,
	prints artprint.Repository,
	distributors distributor.Repository,
	editions edition.Repository,
) (*Importer, error) {
	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		return nil, err
	}

	return &Importer{
		txManager:    txManager,
		batch:        postgres.NewBatchInserter(txManager),
		syncLog:      postgres.NewSyncLogRepo(txManager),
		audit:        audit,
		prints:       prints,
		distributors: distributors,
		editions:     editions,
	}, nil
}

// Run imports prints, then distributors, then editions, so edition rows can
// resolve their references by name. The run is recorded in the sync log.
func (i *Importer) Run(ctx context.Context, opts Options) (*Stats, error) {
	entry, err := i.syncLog.Start(ctx, "airtable-csv")
	if err != nil {
		return nil, fmt.Errorf("start sync log: %w", err)
	}

	stats := &Stats{}
	runErr := i.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		printsByName, err := i.importPrints(ctx, opts.PrintsPath, stats)
		if err != nil {
			return fmt.Errorf("import prints: %w", err)
		}

		distributorsByName, err := i.importDistributors(ctx, opts.DistributorsPath, stats)
		if err != nil {
			return fmt.Errorf("import distributors: %w", err)
		}

		if err := i.importEditions(ctx, opts.EditionsPath, printsByName, distributorsByName, stats); err != nil {
			return fmt.Errorf("import editions: %w", err)
		}

		// Audit entry commits and rolls back together with the import.
		return i.audit.LogChange(ctx, "sync_log", entry.ID, postgres.AuditActionImport, map[string]any{
			"rows_processed":       stats.RowsProcessed,
			"prints_created":       stats.PrintsCreated,
			"prints_updated":       stats.PrintsUpdated,
			"distributors_created": stats.DistributorsCreated,
			"distributors_updated": stats.DistributorsUpdated,
			"editions_created":     stats.EditionsCreated,
			"editions_skipped":     stats.EditionsSkipped,
		})
	})

	entry.RecordsProcessed = stats.RowsProcessed
	entry.RecordsCreated = stats.PrintsCreated + stats.DistributorsCreated + stats.EditionsCreated
	entry.RecordsUpdated = stats.PrintsUpdated + stats.DistributorsUpdated
	entry.RecordsSkipped = stats.EditionsSkipped

	if runErr != nil {
		msg := runErr.Error()
		entry.Status = postgres.SyncStatusFailed
		entry.Error = &msg
	} else {
		entry.Status = postgres.SyncStatusCompleted
	}

	if err := i.syncLog.Finish(ctx, entry); err != nil {
		logger.Error(ctx, "finish sync log failed", "error", err)
	}

	if runErr != nil {
		return nil, runErr
	}
	return stats, nil
}

// importPrints upserts prints by standardized name and returns the name index.
func (i *Importer) importPrints(ctx context.Context, path string, stats *Stats) (map[string]*artprint.Print, error) {
	table, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	existing, err := i.prints.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*artprint.Print, len(existing))
	for idx := range existing {
		p := &existing[idx]
		byName[strings.ToLower(p.Name)] = p
	}

	for _, row := range table.rows {
		stats.RowsProcessed++

		name := StandardizePrintName(table.get(row, "Print Name"))
		if name == "" {
			continue
		}

		totalEditions := 0
		if n := CleanInteger(table.get(row, "Total Editions")); n != nil {
			totalEditions = *n
		}

		if p, ok := byName[strings.ToLower(name)]; ok {
			p.Description = CleanText(table.get(row, "Description"))
			p.TotalEditions = totalEditions
			p.WebLink = CleanText(table.get(row, "Web link"))
			p.Notes = CleanText(table.get(row, "Notes"))
			p.ImageURLs = ParseImageURLs(table.get(row, "Image"))
			p.Touch()
			if err := i.prints.Update(ctx, p); err != nil {
				return nil, err
			}
			stats.PrintsUpdated++
			continue
		}

		p := artprint.NewPrint(name, totalEditions)
		p.Description = CleanText(table.get(row, "Description"))
		p.WebLink = CleanText(table.get(row, "Web link"))
		p.Notes = CleanText(table.get(row, "Notes"))
		p.ImageURLs = ParseImageURLs(table.get(row, "Image"))
		if err := i.prints.Create(ctx, p); err != nil {
			return nil, err
		}
		byName[strings.ToLower(name)] = p
		stats.PrintsCreated++
	}

	return byName, nil
}

// importDistributors upserts distributors by standardized name.
func (i *Importer) importDistributors(ctx context.Context, path string, stats *Stats) (map[string]*distributor.Distributor, error) {
	table, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	existing, err := i.distributors.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*distributor.Distributor, len(existing))
	for idx := range existing {
		d := &existing[idx]
		byName[strings.ToLower(d.Name)] = d
	}

	for _, row := range table.rows {
		stats.RowsProcessed++

		name := StandardizeDistributorName(table.get(row, "Name"))
		if name == "" {
			continue
		}

		if d, ok := byName[strings.ToLower(name)]; ok {
			d.CommissionPercentage = CleanPercentage(table.get(row, "Commission"))
			d.ContactNumber = CleanText(table.get(row, "Contact Number"))
			d.WebAddress = CleanText(table.get(row, "Web address"))
			d.Notes = CleanText(table.get(row, "Notes"))
			d.Touch()
			if err := i.distributors.Update(ctx, d); err != nil {
				return nil, err
			}
			stats.DistributorsUpdated++
			continue
		}

		d := distributor.NewDistributor(name)
		d.CommissionPercentage = CleanPercentage(table.get(row, "Commission"))
		d.ContactNumber = CleanText(table.get(row, "Contact Number"))
		d.WebAddress = CleanText(table.get(row, "Web address"))
		d.Notes = CleanText(table.get(row, "Notes"))
		if err := i.distributors.Create(ctx, d); err != nil {
			return nil, err
		}
		byName[strings.ToLower(name)] = d
		stats.DistributorsCreated++
	}

	return byName, nil
}

// importEditions inserts edition rows via COPY, resolving print and
// distributor references by standardized name. Rows that already exist
// (same display name) or cannot resolve a print are skipped.
func (i *Importer) importEditions(
	ctx context.Context,
	path string,
	printsByName map[string]*artprint.Print,
	distributorsByName map[string]*distributor.Distributor,
	stats *Stats,
) error {
	table, err := readCSV(path)
	if err != nil {
		return err
	}

	existing, err := i.editions.List(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[strings.ToLower(e.DisplayName)] = true
	}

	columns := postgres.ExtractDBColumns[edition.Edition]()
	var rows [][]any

	for _, row := range table.rows {
		stats.RowsProcessed++

		displayName := strings.TrimSpace(table.get(row, "Print - Edition"))
		if displayName == "" || displayName == "-" {
			stats.EditionsSkipped++
			continue
		}
		if seen[strings.ToLower(displayName)] {
			stats.EditionsSkipped++
			continue
		}

		printName, number, ok := ExtractEditionInfo(displayName)
		if !ok {
			// Fall back to the separate Print and Print Edition columns
			printName = StandardizePrintName(table.get(row, "Print"))
			if n := CleanInteger(table.get(row, "Print Edition")); n != nil {
				number = *n
			}
		}

		p, found := printsByName[strings.ToLower(printName)]
		if !found {
			logger.Warn(ctx, "edition references unknown print",
				"edition", displayName, "print", printName)
			stats.EditionsSkipped++
			continue
		}

		e := edition.NewEdition(p.ID, number, displayName, NormalizeSize(table.get(row, "Size")))
		e.FrameType = NormalizeFrameType(table.get(row, "Frame"))
		e.Variation = CleanText(table.get(row, "Variation"))
		e.IsPrinted = CleanBoolean(table.get(row, "Printed"))
		e.IsSold = CleanBoolean(table.get(row, "Sold"))
		e.IsSettled = CleanBoolean(table.get(row, "Settled"))
		e.IsStockChecked = CleanBoolean(table.get(row, "Stock Checked"))
		e.ToCheckInDetail = CleanBoolean(table.get(row, "To check in detail"))
		e.RetailPrice = CleanCurrency(table.get(row, "Retail Price"))
		e.DateSold = ParseDate(table.get(row, "Date Sold"))
		e.CommissionPercentage = CleanPercentage(table.get(row, "Commission"))
		e.DateInGallery = ParseDate(table.get(row, "Date in Gallery"))
		e.Notes = CleanText(table.get(row, "Notes"))
		e.PaymentNote = CleanText(table.get(row, "Payment"))

		if distName := StandardizeDistributorName(table.get(row, "Distributor")); distName != "" {
			if d, ok := distributorsByName[strings.ToLower(distName)]; ok {
				e.DistributorID = &d.ID
			}
		}

		// Sold flags in the export can disagree; trust the date
		if e.DateSold != nil {
			e.IsSold = true
		}
		if e.IsSold && e.DateSold == nil {
			e.IsSold = false
			e.IsSettled = false
		}

		if err := e.Validate(ctx); err != nil {
			logger.Warn(ctx, "edition row invalid", "edition", displayName, "error", err)
			stats.EditionsSkipped++
			continue
		}

		data := postgres.StructToMap(e)
		values := make([]any, len(columns))
		for ci, col := range columns {
			values[ci] = data[col]
		}
		rows = append(rows, values)
		seen[strings.ToLower(displayName)] = true
	}

	if len(rows) == 0 {
		return nil
	}

	inserted, err := i.batch.CopyFromSlice(ctx, "editions", columns, rows)
	if err != nil {
		return fmt.Errorf("copy editions: %w", err)
	}
	stats.EditionsCreated = int(inserted)

	return nil
}

// csvTable is a parsed CSV file with header-based cell access.
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func (t *csvTable) get(row []string, column string) string {
	idx, ok := t.header[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// readCSV loads a CSV export, tolerating a UTF-8 BOM and ragged rows.
func readCSV(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	header := make(map[string]int, len(headerRow))
	for idx, name := range headerRow {
		if idx == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[strings.TrimSpace(name)] = idx
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}

	return &csvTable{header: header, rows: rows}, nil
}
