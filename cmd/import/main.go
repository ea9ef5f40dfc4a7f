package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/b-shhhh/university-finder-ai/config"
	"github.com/b-shhhh/university-finder-ai/database"
	"github.com/b-shhhh/university-finder-ai/services"
)

// Expected CSV header:
// source_id,name,country,alpha_two_code,state,city,website,flag_url,logo_url,courses,description
// The courses column holds a pipe-separated list. Rows are processed
// sequentially so re-running the importer over the same file is a no-op.
func main() {
	filePath := flag.String("file", "", "path to the universities CSV file")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: import -file universities.csv")
	}

	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	created, updated, err := importFile(db, *filePath)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import completed: %d created, %d updated", created, updated)
}

func importFile(db *gorm.DB, path string) (created, updated int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return 0, 0, fmt.Errorf("missing required column %q", "name")
	}
	if _, ok := columns["country"]; !ok {
		return 0, 0, fmt.Errorf("missing required column %q", "country")
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	identity := services.NewIdentityService(db)

	rowNumber := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, updated, fmt.Errorf("row %d: %w", rowNumber+1, err)
		}
		rowNumber++

		row := services.ImportRow{
			SourceID:    field(record, "source_id"),
			Name:        field(record, "name"),
			Country:     field(record, "country"),
			Alpha2:      field(record, "alpha_two_code"),
			State:       field(record, "state"),
			City:        field(record, "city"),
			Website:     field(record, "website"),
			FlagURL:     field(record, "flag_url"),
			LogoURL:     field(record, "logo_url"),
			Courses:     splitCourses(field(record, "courses")),
			Description: field(record, "description"),
			RowNumber:   rowNumber,
		}
		if row.Name == "" {
			log.Printf("Skipping row %d: empty name", rowNumber)
			continue
		}

		result, err := identity.ImportUpsert(row)
		if err != nil {
			return created, updated, fmt.Errorf("row %d (%s): %w", rowNumber, row.Name, err)
		}
		switch result {
		case services.ImportCreated:
			created++
		case services.ImportUpdated:
			updated++
		}
	}

	return created, updated, nil
}

func splitCourses(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
