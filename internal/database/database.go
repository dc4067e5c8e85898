package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"sadaka/internal/config"
)

// Init opens the MySQL connection and makes sure the schema exists
func Init(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

// migrate creates the tables if they do not exist yet
func migrate(db *sql.DB) error {
	createSnapshots := `
	CREATE TABLE IF NOT EXISTS donation_snapshots (
		id INT AUTO_INCREMENT PRIMARY KEY,
		families_supported INT NOT NULL,
		last_updated VARCHAR(255) NOT NULL,
		recorded_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`
	if _, err := db.Exec(createSnapshots); err != nil {
		return err
	}

	createPhotos := `
	CREATE TABLE IF NOT EXISTS gallery_photos (
		id CHAR(36) PRIMARY KEY,
		url TEXT NOT NULL,
		caption TEXT NULL,
		date VARCHAR(255) NULL,
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`
	if _, err := db.Exec(createPhotos); err != nil {
		return err
	}

	return nil
}
