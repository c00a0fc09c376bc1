package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/meridian/catalog/api/internal/config"
	"github.com/meridian/catalog/api/internal/database"
)

// sampleServices are inserted when seeding without -wipe-only.
var sampleServices = []map[string]interface{}{
	{"name": "Deep Tissue Massage", "description": "60 minute full body massage focused on muscle recovery", "price": 85.0, "is_active": true, "is_featured": true},
	{"name": "Swedish Massage", "description": "Relaxing 60 minute massage with light to medium pressure", "price": 70.0, "is_active": true, "is_featured": false},
	{"name": "Haircut & Style", "description": "Wash, cut and blow dry with one of our senior stylists", "price": 45.0, "is_active": true, "is_featured": true},
	{"name": "Beard Trim", "description": "Precision beard shaping and hot towel finish", "price": 20.0, "is_active": true, "is_featured": false},
	{"name": "Classic Manicure", "description": "Nail shaping, cuticle care and polish", "price": 30.0, "is_active": true, "is_featured": false},
	{"name": "Gel Pedicure", "description": "Long lasting gel polish pedicure with foot soak", "price": 55.0, "is_active": false, "is_featured": false},
	{"name": "Facial Treatment", "description": "Deep cleansing facial with steam and extraction", "price": 95.0, "is_active": true, "is_featured": false},
	{"name": "Hot Stone Therapy", "description": "90 minute hot stone massage session", "price": 120.0, "is_active": false, "is_featured": true},
}

func main() {
	wipe := flag.Bool("wipe", false, "Delete all existing services before seeding")
	wipeOnly := flag.Bool("wipe-only", false, "Delete all existing services and exit without seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if *wipe || *wipeOnly {
		if err := db.Execute(ctx, "DELETE service", nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error wiping services: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Removed all existing services")
		if *wipeOnly {
			return
		}
	}

	// Insert all samples in a single transaction so a partial seed
	// never leaves the catalog half populated.
	batch := database.NewAtomicBatch()
	for _, svc := range sampleServices {
		batch.Add(
			"CREATE service CONTENT {name: $name, description: $description, price: $price, is_active: $is_active, is_featured: $is_featured, created_at: time::now(), updated_at: time::now()}",
			svc,
		)
	}

	if err := batch.Execute(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding services: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d services into %s/%s\n", batch.Len(), cfg.Database.Namespace, cfg.Database.Database)
}
