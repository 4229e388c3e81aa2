package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/catalog"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/orders"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/reviews"
)

// Migrates the schema and optionally loads products from a JSON file:
//
//	go run ./cmd/tools/seedcatalog -file seed/products.json
func main() {
	file := flag.String("file", "", "path to a JSON array of products to upsert")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&catalog.Product{},
		&reviews.Review{},
		&orders.Order{},
		&orders.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	fmt.Println("✓ Schema migrated")

	if *file == "" {
		return
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	for _, p := range products {
		if err := db.Save(&p).Error; err != nil {
			log.Fatalf("Failed to upsert product %s: %v", p.ID, err)
		}
	}
	fmt.Printf("✓ Seeded %d products\n", len(products))
}
