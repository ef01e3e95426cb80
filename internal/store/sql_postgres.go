package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/migrations"
	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

const (
	connectRetries     = 5
	connectBaseBackoff = 500 * time.Millisecond
	maxOpenConns       = 10
	maxIdleConns       = 4
)

// psql builds statements with PostgreSQL "$n" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is a PostgreSQL connection pool shared by all Postgres repositories.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a pool for cfg.DSN and pings it. Failed pings
// that [PostgresErrorClassifier] reports as retryable are retried with an
// exponential backoff so the API can start before the database is ready.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(connectBaseBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingErr := conn.PingContext(ctx)
		if pingErr == nil {
			return nil
		}
		if db.errorClassificator.Classify(pingErr) == Retryable {
			log.Warn().Err(pingErr).Str("func", "NewConnectPostgres").Msg("database is not ready, retrying")
			return retry.RetryableError(pingErr)
		}
		return pingErr
	})
	if err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return db, nil
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Ping implements [Pinger].
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}
