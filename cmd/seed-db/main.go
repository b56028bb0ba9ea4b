// Command seed-db provisions the storefront database: schema migrations,
// catalog products, users with roles, and their API keys.
//
// The seed file is JSON, optionally gzip-compressed (detected by the .gz
// extension):
//
//	{
//	  "products": [{"name": "Coffee beans 1kg", "price": "250.00"}],
//	  "users": [{"username": "dana", "roles": ["manager"], "api_key": "..."}]
//	}
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/olekhv/storefront/internal/repository"
)

type seedFile struct {
	Products []productJSON `json:"products"`
	Users    []userJSON    `json:"users"`
}

type productJSON struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active *bool           `json:"active"`
}

type userJSON struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	APIKey   string   `json:"api_key"`
}

func main() {
	var (
		databaseURL  string
		seedPath     string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedPath, "seed-file", "db/seed/storefront.json", "path to seed JSON file (.json or .json.gz)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or STORE_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("STORE_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, seedPath, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedPath, pepper string) error {
	seed, err := readSeedFile(seedPath)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool, seed.Products); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedUsers(ctx, pool, seed.Users, pepper); err != nil {
		return errors.Wrap(err, "seed users")
	}

	return nil
}

func readSeedFile(path string) (*seedFile, error) {
	slog.Info("reading seed file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	var seed seedFile
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return nil, errors.Wrap(err, "parse seed JSON")
	}
	return &seed, nil
}

const upsertProductSQL = `
INSERT INTO products (name, price, active)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, active = EXCLUDED.active`

func seedProducts(ctx context.Context, pool *pgxpool.Pool, products []productJSON) error {
	slog.Info("upserting products", slog.Int("count", len(products)))

	for _, p := range products {
		active := true
		if p.Active != nil {
			active = *p.Active
		}
		if _, err := pool.Exec(ctx, upsertProductSQL, p.Name, p.Price, active); err != nil {
			return errors.Wrapf(err, "upsert product %q", p.Name)
		}

		slog.Info("upserted product",
			slog.String("name", p.Name), slog.String("price", p.Price.StringFixed(2)))
	}

	return nil
}

const (
	upsertUserSQL = `
INSERT INTO users (username, roles)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET roles = EXCLUDED.roles
RETURNING id`

	upsertAPIKeySQL = `
INSERT INTO api_keys (key_hash, user_id, name)
VALUES ($1, $2, $3)
ON CONFLICT (key_hash) DO NOTHING`
)

func seedUsers(ctx context.Context, pool *pgxpool.Pool, users []userJSON, pepper string) error {
	slog.Info("upserting users", slog.Int("count", len(users)))

	for _, u := range users {
		if u.Roles == nil {
			u.Roles = []string{}
		}

		var userID int64
		if err := pool.QueryRow(ctx, upsertUserSQL, u.Username, u.Roles).Scan(&userID); err != nil {
			return errors.Wrapf(err, "upsert user %q", u.Username)
		}

		if u.APIKey != "" {
			keyHash := hashKey(u.APIKey, pepper)
			if _, err := pool.Exec(ctx, upsertAPIKeySQL, keyHash, userID, u.Username+" seed key"); err != nil {
				return errors.Wrapf(err, "upsert api key for %q", u.Username)
			}
		}

		slog.Info("upserted user",
			slog.String("username", u.Username),
			slog.Any("roles", u.Roles),
			slog.Bool("api_key", u.APIKey != ""))
	}

	return nil
}

// hashKey mirrors the server's API key derivation: only the HMAC-SHA256 hex
// digest is stored.
func hashKey(key, pepper string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
