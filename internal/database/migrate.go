// Package database applies schema migrations for the session store
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultMigration is the embedded schema applied when no file is given.
const DefaultMigration = "migrations/create_sessions_table.sql"

// ReadEmbedded returns the contents of an embedded migration.
func ReadEmbedded(name string) (string, error) {
	b, err := migrations.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read embedded migration %s: %w", name, err)
	}
	return string(b), nil
}

// SplitStatements splits a migration on semicolons and strips `--` comment
// lines. Semicolons inside string literals are not supported.
func SplitStatements(migration string) []string {
	var out []string
	for _, stmt := range strings.Split(migration, ";") {
		var clean []string
		for _, line := range strings.Split(stmt, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			clean = append(clean, line)
		}
		if len(clean) == 0 {
			continue
		}
		out = append(out, strings.TrimSpace(strings.Join(clean, "\n")))
	}
	return out
}

// Apply executes each statement of migration in order, stopping at the
// first failure.
func Apply(ctx context.Context, db *sql.DB, migration string, log *zap.SugaredLogger) error {
	statements := SplitStatements(migration)
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d of %d: %w\n%s", i+1, len(statements), err, stmt)
		}
		log.Debugw("Applied statement", "index", i+1, "total", len(statements))
	}
	return nil
}
