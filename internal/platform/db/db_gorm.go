// Package db provides the GORM database bootstrap for the server.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// OpenDB connects to PostgreSQL and optionally runs schema migrations.
// The DSN comes from DATABASE_URL, or is assembled from discrete DB_* variables.
// Connection attempts are retried for up to 60 seconds so the server can
// start before the database container is ready.
func OpenDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError makes unique-violation checks driver independent
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// User first: tasks carry a foreign key to users with ON DELETE CASCADE
		if err := db.AutoMigrate(
			&authentity.User{},
			&taskentity.Task{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
