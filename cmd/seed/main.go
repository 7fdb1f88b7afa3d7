package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogpostgres "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/beandock/coffeeshop-api/internal/domains/catalog/application"
	catalogdomain "github.com/beandock/coffeeshop-api/internal/domains/catalog/domain"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
	userspostgres "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/persistence/postgres"
	usersdomain "github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	usersports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
	platformmigrations "github.com/beandock/coffeeshop-api/internal/platform/migrations"
	platformpostgres "github.com/beandock/coffeeshop-api/internal/platform/postgres"
)

// Seeds the database with an administrator account and a starter menu.
// Safe to re-run: existing records are left untouched.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed")
	}
	if err := platformmigrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if err := seedAdmin(ctx, userspostgres.NewRepository(db)); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if err := seedCatalog(ctx, catalogapp.NewService(
		catalogpostgres.NewCategoryRepository(db),
		catalogpostgres.NewProductRepository(db),
	)); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	log.Printf("seed completed")
}

func seedAdmin(ctx context.Context, repo usersports.Repository) error {
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Printf("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		log.Printf("admin user %s already exists", email)
		return nil
	} else if !errors.Is(err, usersports.ErrNotFound) {
		return err
	}
	admin, err := usersdomain.NewUser(email, "admin", password, 0)
	if err != nil {
		return err
	}
	admin.FullName = "Administrator"
	admin.IsAdmin = true
	if _, err := repo.Save(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin user %s created", email)
	return nil
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int32
}

var menu = map[string][]seedProduct{
	"Coffee": {
		{"Espresso", "Single shot of espresso", "2.50", 100},
		{"Americano", "Espresso with hot water", "3.00", 100},
		{"Latte", "Espresso with steamed milk", "4.00", 100},
		{"Cappuccino", "Espresso with foamed milk", "4.00", 100},
	},
	"Tea": {
		{"Earl Grey", "Black tea with bergamot", "2.80", 50},
		{"Green Tea", "Japanese sencha", "2.80", 50},
	},
	"Pastries": {
		{"Croissant", "Butter croissant", "3.20", 40},
		{"Blueberry Muffin", "Muffin with fresh blueberries", "3.50", 30},
	},
}

func seedCatalog(ctx context.Context, catalog catalogports.Service) error {
	for categoryName, products := range menu {
		category, err := catalogdomain.NewCategory(categoryName, "", "")
		if err != nil {
			return err
		}
		saved, err := catalog.CreateCategory(ctx, category)
		if err != nil {
			if errors.Is(err, catalogports.ErrCategoryNameTaken) {
				log.Printf("category %s already exists, skipping", categoryName)
				continue
			}
			return err
		}
		for _, p := range products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return err
			}
			product, err := catalogdomain.NewProduct(p.name, p.description, price, "", true, p.stock, saved.ID)
			if err != nil {
				return err
			}
			if _, err := catalog.CreateProduct(ctx, product); err != nil {
				return err
			}
		}
		log.Printf("category %s seeded with %d products", categoryName, len(products))
	}
	return nil
}
