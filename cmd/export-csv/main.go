package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"watchhub/internal/catalog"
	"watchhub/internal/stats"
	"watchhub/internal/tracker"
	"watchhub/pkg/database"
	"watchhub/pkg/models"
	"watchhub/pkg/utils"
)

func main() {
	var (
		source = flag.String("catalog", "", "catalog path or URL (default: WATCHHUB_CATALOG)")
		out    = flag.String("out", "data/marathon.csv", "output CSV path")
	)
	flag.Parse()

	src := *source
	if src == "" {
		src = utils.LoadServerConfig().CatalogSource
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	items, err := catalog.NewLoader().Load(ctx, src)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}

	svc := tracker.NewService(tracker.NewSQLiteStore(db))
	svc.Load(items)
	merged := svc.Snapshot()

	if err := exportCSV(merged, *out); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	s := stats.Aggregate(merged)
	log.Printf("✅ exported %d items to %s (%d watched, %.1f%% complete)",
		s.Total, *out, s.Watched, s.CompletionPercent)
}

func exportCSV(items []models.WorkingItem, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "title", "saga", "universe", "content_type",
		"watched", "rating", "comment", "scheduled_date",
	}); err != nil {
		return err
	}

	for _, it := range items {
		if err := w.Write([]string{
			it.ID,
			it.Title,
			it.Saga,
			it.Universe,
			it.ContentType,
			strconv.FormatBool(it.Watched),
			strconv.Itoa(it.Rating),
			it.Comment,
			it.ScheduledDate,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
