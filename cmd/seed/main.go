// File: cmd/seed/main.go
// Seeds a fresh database with the product catalog and the first
// super-admin profile so the back office is usable after deploy.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
	pg "softcontrol-backoffice/internal/infra/db/postgres"
)

func main() {
	var (
		dbURL      = flag.String("db", os.Getenv("DATABASE_URL"), "postgres connection url")
		adminID    = flag.String("admin-id", "", "identity-provider subject id of the first super admin")
		adminEmail = flag.String("admin-email", "", "email of the first super admin")
		adminName  = flag.String("admin-name", "Administrator", "full name of the first super admin")
	)
	flag.Parse()

	if *dbURL == "" {
		log.Fatal("a database url is required (-db or DATABASE_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, *dbURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	productRepo := pg.NewProductRepo(pool)
	monthly := 30
	annual := 365
	trial := 14
	products := []*model.Product{
		{
			Name:             "SoftControl Basic",
			SKU:              "SC-BASIC-M",
			SubscriptionType: model.SubscriptionTypeMonthly,
			Price:            29,
			Currency:         "EUR",
			DurationDays:     &monthly,
			Features:         []string{"core", "updates"},
			IsActive:         true,
		},
		{
			Name:             "SoftControl Pro",
			SKU:              "SC-PRO-Y",
			SubscriptionType: model.SubscriptionTypeAnnual,
			Price:            299,
			Currency:         "EUR",
			DurationDays:     &annual,
			Features:         []string{"core", "updates", "priority-support"},
			IsActive:         true,
		},
		{
			Name:             "SoftControl Lifetime",
			SKU:              "SC-LIFE",
			SubscriptionType: model.SubscriptionTypeLifetime,
			Price:            899,
			Currency:         "EUR",
			Features:         []string{"core", "updates", "priority-support", "lifetime"},
			IsActive:         true,
		},
		{
			Name:             "SoftControl Trial",
			SKU:              "SC-TRIAL",
			SubscriptionType: model.SubscriptionTypeTrial,
			Price:            0,
			Currency:         "EUR",
			DurationDays:     &trial,
			Features:         []string{"core"},
			IsActive:         true,
		},
	}
	for _, p := range products {
		product, err := model.NewProduct(p.Name, p.SKU, p.SubscriptionType, p.Price, p.Currency)
		if err != nil {
			log.Fatalf("product %s: %v", p.SKU, err)
		}
		product.DurationDays = p.DurationDays
		product.Features = p.Features
		if err := productRepo.Save(ctx, repository.NoTX, product); err != nil {
			log.Fatalf("save product %s: %v", p.SKU, err)
		}
		log.Printf("seeded product %s", p.SKU)
	}

	if *adminID != "" && *adminEmail != "" {
		profile, err := model.NewProfile(*adminID, *adminName, *adminEmail, "", model.RoleSuperAdmin)
		if err != nil {
			log.Fatalf("admin profile: %v", err)
		}
		profileRepo := pg.NewProfileRepo(pool)
		if err := profileRepo.Upsert(ctx, repository.NoTX, profile); err != nil {
			log.Fatalf("save admin profile: %v", err)
		}
		log.Printf("seeded super admin %s", *adminEmail)
	}
}
