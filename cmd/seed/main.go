// Command seed loads the demo dataset into Postgres, or writes it as JSON,
// and prints a development token for a demo user.
//
// Usage:
//
//	go run ./cmd/seed                      # import into DATABASE_URL
//	go run ./cmd/seed -out data/demo.json  # write the dataset instead
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/postgres"
	"github.com/couchcryptid/livestock-risk-service/internal/auth"
	"github.com/couchcryptid/livestock-risk-service/internal/config"
	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

const tokenTTL = 30 * 24 * time.Hour

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "write the dataset as JSON to this path instead of importing it")
	tokenUser := flag.Int64("token-user", seed.DemoUserID, "print a bearer token for this user id; 0 disables")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	ds := seed.Demo(now)

	if *out != "" {
		if err := writeDataset(*out, ds); err != nil {
			return err
		}
		log.Printf("wrote %d farms, %d outbreaks, %d vets to %s", len(ds.Farms), len(ds.Outbreaks), len(ds.Vets), *out)
	} else {
		if err := importDataset(cfg.DatabaseURL, ds); err != nil {
			return err
		}
		log.Printf("imported %d farms, %d outbreaks, %d vets", len(ds.Farms), len(ds.Outbreaks), len(ds.Vets))
	}

	if *tokenUser > 0 {
		token, err := auth.NewTokens(cfg.JWTSecret).Issue(*tokenUser, now, tokenTTL)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Println(token)
	}
	return nil
}

func writeDataset(path string, ds seed.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func importDataset(databaseURL string, ds seed.Dataset) error {
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required to import; use -out to write JSON instead")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return postgres.NewStore(pool).Import(ctx, ds)
}
