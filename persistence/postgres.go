package persistence

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/jfuentesr/butaca/entities"
)

// NewPostgresPool connects using DATABASE_URL, loading .env first if
// present.
func NewPostgresPool(ctx context.Context) (*pgxpool.Pool, error) {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "creating postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "pinging postgres")
	}
	return pool, nil
}

// InitPostgresSchema applies db/schema.sql. Safe to run repeatedly.
func InitPostgresSchema(ctx context.Context, pool *pgxpool.Pool, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return errors.Wrap(err, "reading schema file")
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		return errors.Wrap(err, "applying schema")
	}
	return nil
}

// PostgresArchive writes purchase records to a purchases table.
type PostgresArchive struct {
	pool *pgxpool.Pool
}

func NewPostgresArchive(pool *pgxpool.Pool) *PostgresArchive {
	return &PostgresArchive{pool: pool}
}

func (a *PostgresArchive) WritePurchase(ctx context.Context, entry entities.PurchaseLogEntry) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO purchases (user_id, correo, total, tickets, products, purchased_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UserID, entry.Correo, entry.Total, entry.Tickets, entry.Products, entry.PurchasedAt,
	)
	return errors.Wrap(err, "inserting purchase record")
}
