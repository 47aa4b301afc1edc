package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PostgresDB holds both handles onto the same database: the pgx pool for the
// account repositories and an sqlx handle (pgx stdlib driver) for the board
// repositories.
type PostgresDB struct {
	Pool *pgxpool.Pool
	SQL  *sqlx.DB
	log  *zap.Logger
}

func NewPostgresDB(databaseURL string, log *zap.Logger) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB, err := sqlx.ConnectContext(ctx, "pgx", databaseURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to PostgreSQL")
	return &PostgresDB{Pool: pool, SQL: sqlDB, log: log}, nil
}

func (db *PostgresDB) Close() {
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil {
			db.log.Warn("failed to close sql handle", zap.Error(err))
		}
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
	db.log.Info("PostgreSQL connections closed")
}
