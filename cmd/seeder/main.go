package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/itemdesk/internal/config"
	"github.com/foxxcyber/itemdesk/internal/database"
	"github.com/foxxcyber/itemdesk/internal/models"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview rows without writing to database")
	localFile := flag.String("file", "", "CSV file with name,description,price,is_active columns")
	flag.Parse()

	if *localFile == "" {
		log.Fatal("Missing -file")
	}

	file, err := os.Open(*localFile)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	items, err := parseItems(file)
	if err != nil {
		log.Fatalf("Failed to parse items: %v", err)
	}
	log.Printf("Found %d item(s) to import", len(items))

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(items, 20)
		return
	}

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	imported := 0
	for _, req := range items {
		if _, err := db.CreateItem(ctx, req); err != nil {
			log.Printf("Warning: failed to import %q: %v", req.Name, err)
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d of %d item(s) created", imported, len(items))
}

// parseItems reads the CSV header to locate columns, then one item per row.
// Rows without a name or a positive price are skipped.
func parseItems(reader io.Reader) ([]*models.CreateItemRequest, error) {
	csvReader := csv.NewReader(bufio.NewReader(reader))
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	nameCol, ok := colMap["name"]
	if !ok {
		return nil, fmt.Errorf("CSV header has no name column")
	}
	priceCol, ok := colMap["price"]
	if !ok {
		return nil, fmt.Errorf("CSV header has no price column")
	}
	descCol, hasDesc := colMap["description"]
	activeCol, hasActive := colMap["is_active"]

	field := func(record []string, col int) string {
		if col < len(record) {
			return strings.TrimSpace(record[col])
		}
		return ""
	}

	var items []*models.CreateItemRequest
	line := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Warning: skipping malformed row %d: %v", line, err)
			continue
		}

		name := field(record, nameCol)
		if name == "" {
			log.Printf("Warning: skipping row %d without a name", line)
			continue
		}
		if utf8.RuneCountInString(name) > 255 {
			log.Printf("Warning: skipping row %d, name longer than 255 characters", line)
			continue
		}

		price, err := strconv.ParseFloat(field(record, priceCol), 64)
		if err != nil || price <= 0 {
			log.Printf("Warning: skipping row %d with invalid price %q", line, field(record, priceCol))
			continue
		}

		req := &models.CreateItemRequest{Name: name, Price: &price}
		if hasDesc {
			if desc := field(record, descCol); desc != "" {
				req.Description = &desc
			}
		}
		if hasActive {
			if raw := field(record, activeCol); raw != "" {
				active, err := strconv.ParseBool(raw)
				if err != nil {
					log.Printf("Warning: row %d has invalid is_active %q, defaulting to true", line, raw)
				} else {
					req.IsActive = &active
				}
			}
		}

		items = append(items, req)
	}

	return items, nil
}

func printPreview(items []*models.CreateItemRequest, limit int) {
	fmt.Println("\nPreview of items to import:")
	fmt.Println("----------------------------------------")

	for i, item := range items {
		if i >= limit {
			fmt.Printf("... and %d more\n", len(items)-limit)
			break
		}
		active := true
		if item.IsActive != nil {
			active = *item.IsActive
		}
		desc := ""
		if item.Description != nil {
			desc = " - " + *item.Description
		}
		fmt.Printf("  %-30s $%8.2f  active=%-5t%s\n", item.Name, *item.Price, active, desc)
	}
	fmt.Println()
}
