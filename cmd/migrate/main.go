// cmd/migrate/main.go
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"customer-admin/migrations"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "also insert the sample customers")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[MIGRATE] No .env file found, relying on system env vars")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to reach database", zap.Error(err))
	}

	files, err := migrations.Schema()
	if err != nil {
		logger.Fatal("failed to list migrations", zap.Error(err))
	}
	if *seed {
		seeds, err := migrations.Seeds()
		if err != nil {
			logger.Fatal("failed to list seeds", zap.Error(err))
		}
		files = append(files, seeds...)
	}

	for _, file := range files {
		content, err := migrations.Read(file)
		if err != nil {
			logger.Fatal("failed to read migration", zap.String("file", file), zap.Error(err))
		}
		if _, err := db.Exec(content); err != nil {
			logger.Fatal("failed to apply migration", zap.String("file", file), zap.Error(err))
		}
		logger.Info("applied", zap.String("file", file))
	}

	logger.Info("database migration completed", zap.Int("files", len(files)))
}
