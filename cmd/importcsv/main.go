package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/utils"
)

// Backfills punch events from a CSV export. Expected columns:
// external_id, event_type, timestamp (header row required). Rows whose
// external id already exists are skipped by the insert.
func main() {
	path := flag.String("file", "", "path to the CSV file")
	userID := flag.String("user", "IMPORT_USER", "user id for imported punches")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: importcsv -file punches.csv")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	rows, err := utils.ParseCSV(f)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}
	if len(rows) < 2 {
		log.Fatal("no data rows in csv")
	}

	ctx := context.Background()

	cfg, err := devops.LoadAppConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dm, err := core.New(cfg.DSN, 2)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer dm.Close()

	st := store.NewPunchStore(dm)

	imported := 0
	for i, row := range rows[1:] {
		event, err := rowToEvent(row, *userID)
		if err != nil {
			log.Fatalf("row %d: %v", i+2, err)
		}
		if _, err := st.InsertEvent(ctx, event); err != nil {
			log.Fatalf("insert %s: %v", event.ExternalID, err)
		}
		imported++
	}

	log.Printf("imported %d punch events", imported)
}

func rowToEvent(row []string, userID string) (model.PunchEvent, error) {
	if len(row) < 3 {
		return model.PunchEvent{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}

	kind := model.EventType(strings.ToUpper(strings.TrimSpace(row[1])))
	if kind != model.EventIn && kind != model.EventOut {
		return model.PunchEvent{}, fmt.Errorf("unknown event type %q", row[1])
	}

	ts, err := utils.ParseISOTime(row[2])
	if err != nil {
		return model.PunchEvent{}, fmt.Errorf("bad timestamp %q: %w", row[2], err)
	}

	return model.PunchEvent{
		UserID:     userID,
		EventType:  kind,
		Timestamp:  *ts,
		ExternalID: row[0],
		RawText:    string(kind),
	}, nil
}
