package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a new MySQL database connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64) NOT NULL,
		email         VARCHAR(255) NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		title      VARCHAR(255) NOT NULL DEFAULT 'Untitled',
		thumbnail  MEDIUMTEXT NULL,
		elements   JSON NOT NULL,
		is_example BOOLEAN NOT NULL DEFAULT FALSE,
		owner_id   BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_projects_owner (owner_id),
		KEY idx_projects_example (is_example),
		CONSTRAINT fk_projects_owner FOREIGN KEY (owner_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS custom_cards (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		card_type    VARCHAR(32) NOT NULL,
		image_url    MEDIUMTEXT NOT NULL,
		text_content TEXT NULL,
		owner_id     BIGINT NOT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_cards_owner (owner_id),
		CONSTRAINT fk_cards_owner FOREIGN KEY (owner_id) REFERENCES users(id)
	)`,
}

// Migrate creates the schema if it does not exist yet. Runs at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
