package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/internal/db"
	"github.com/foodreco/foodreco-backend/internal/storage"
)

const batchSize = 1000

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <catalog.xlsx|catalog.json> [--yes]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "--yes"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gormDB, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	restaurantRepo := repository.NewRestaurantRepository(gormDB)

	source := storage.NewCatalogSourceForPath(filePath)
	fmt.Printf("Reading catalog: %s\n", source.Name())
	entries, err := source.Load(context.Background())
	if err != nil {
		log.Fatal("Failed to read catalog:", err)
	}

	restaurants, located, duplicates := normalize(entries)

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Entries read: %d\n", len(entries))
	fmt.Printf("  Restaurants to import: %d\n", len(restaurants))
	fmt.Printf("  With a location: %d\n", located)
	fmt.Printf("  Duplicates skipped: %d\n", duplicates)

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := restaurantRepo.BulkCreate(restaurants, batchSize); err != nil {
		log.Fatal("Failed to bulk create restaurants:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total restaurants imported: %d\n", len(restaurants))
}

// normalize converts raw entries and drops exact duplicates (same name and
// position).
func normalize(entries []model.RawRestaurant) ([]model.Restaurant, int, int) {
	restaurants := make([]model.Restaurant, 0, len(entries))
	seen := make(map[string]bool)
	located, duplicates := 0, 0

	for _, entry := range entries {
		r := model.NormalizeRaw(entry)

		key := fmt.Sprintf("%s|%.6f|%.6f", strings.ToLower(r.Name), r.Latitude, r.Longitude)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		if r.HasLocation() {
			located++
		}
		restaurants = append(restaurants, r)

		if len(restaurants)%batchSize == 0 {
			fmt.Printf("Processed %d restaurants...\n", len(restaurants))
		}
	}
	return restaurants, located, duplicates
}
