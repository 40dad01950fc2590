package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chessnerd435/study-app/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	db     *sql.DB
	config *config.DBConfig
}

func NewPostgresClient(cfg *config.DBConfig) (*PostgresClient, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{
		db:     db,
		config: cfg,
	}, nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}

func (c *PostgresClient) InitSchema(ctx context.Context) error {
	createProfilesTable := `
		CREATE TABLE IF NOT EXISTS profiles (
			id VARCHAR(255) PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			display_name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL DEFAULT '',
			provider VARCHAR(50) NOT NULL DEFAULT 'password',
			xp INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			quizzes_created INTEGER NOT NULL DEFAULT 0,
			quizzes_completed INTEGER NOT NULL DEFAULT 0,
			last_active TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	createQuizzesTable := `
		CREATE TABLE IF NOT EXISTS quizzes (
			id VARCHAR(255) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			creator_id VARCHAR(255) NOT NULL,
			creator_name VARCHAR(255) NOT NULL,
			question_count INTEGER NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			questions JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_quizzes_creator_id ON quizzes(creator_id);
		CREATE INDEX IF NOT EXISTS idx_quizzes_created_at ON quizzes(created_at DESC);
	`

	createRefreshTokensTable := `
		CREATE TABLE IF NOT EXISTS refresh_tokens (
			token_hash VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
	`

	if _, err := c.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("failed to create profiles table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createQuizzesTable); err != nil {
		return fmt.Errorf("failed to create quizzes table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createRefreshTokensTable); err != nil {
		return fmt.Errorf("failed to create refresh_tokens table: %w", err)
	}

	return nil
}
