package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"frontend-api/internal/database"
	"frontend-api/internal/shared"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Sugar()
	defer func() {
		_ = log.Sync()
	}()

	DSN, err := shared.SafeEnv("DSN")
	if err != nil {
		log.Fatalw("DSN environment variable is required", "error", err)
	}

	// Embedded session schema unless a file is given
	migration, err := database.ReadEmbedded(database.DefaultMigration)
	source := database.DefaultMigration
	if len(os.Args) > 1 {
		source = os.Args[1]
		var b []byte
		b, err = os.ReadFile(source)
		migration = string(b)
	}
	if err != nil {
		log.Fatalw("Error reading migration", "source", source, "error", err)
	}

	db, err := sql.Open("mysql", DSN)
	if err != nil {
		log.Fatalw("Error connecting to database", "error", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalw("Error pinging database", "error", err)
	}

	if err := database.Apply(context.Background(), db, migration, log); err != nil {
		log.Fatalw("Migration failed", "source", source, "error", err)
	}
	log.Infow("Migration completed successfully", "source", source)
}
