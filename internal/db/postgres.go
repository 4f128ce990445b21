package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresClient applies DDL over a single pgx connection
type PostgresClient struct {
	conn *pgx.Conn
}

// NewPostgresClient connects to connString and pings the server
func NewPostgresClient(ctx context.Context, connString string) (*PostgresClient, error) {
	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{conn: conn}, nil
}

// Close closes the connection
func (c *PostgresClient) Close() error {
	return c.conn.Close(context.Background())
}

// Apply executes stmts in one transaction. PostgreSQL DDL is transactional,
// so a failing statement leaves the database untouched.
func (c *PostgresClient) Apply(ctx context.Context, stmts []string) error {
	return pgx.BeginFunc(ctx, c.conn, func(tx pgx.Tx) error {
		for i, stmt := range stmts {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
