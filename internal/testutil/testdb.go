// Package testutil opens throwaway Postgres stores for integration tests. Each
// store lives in its own schema, dropped when the test ends. Tests are skipped
// when TEST_POSTGRES_DSN is not set; TEST_MIGRATIONS_DIR points at the schema
// files when the tests run outside the source tree.
package testutil

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"banking-backoffice/internal/config"
	"banking-backoffice/internal/store"

	"github.com/jackc/pgx/v5"
)

func OpenTestStore(t *testing.T) *store.Store {
	t.Helper()
	cfg, err := config.LoadTest()
	if err != nil {
		t.Skipf("skip test db: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	if err := execAdmin(ctx, cfg.PostgresDSN, "CREATE SCHEMA %s", schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_ = execAdmin(context.Background(), cfg.PostgresDSN, "DROP SCHEMA %s CASCADE", schema)
	})

	st, err := store.New(withSearchPath(cfg.PostgresDSN, schema))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	if err := migrateUp(ctx, st, cfg.MigrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return st
}

func execAdmin(ctx context.Context, dsn, format, schema string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, fmt.Sprintf(format, pgx.Identifier{schema}.Sanitize()))
	return err
}

// migrateUp runs every *.up.sql file in dir, or in the nearest migrations/
// directory when dir is empty, in name order.
func migrateUp(ctx context.Context, st *store.Store, dir string) error {
	if dir == "" {
		found, err := findMigrationsDir()
		if err != nil {
			return err
		}
		dir = found
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.up.sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := st.Pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	start := dir
	for {
		p := filepath.Join(dir, "migrations")
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found above %s", start)
		}
		dir = parent
	}
}

func withSearchPath(dsn, schema string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "search_path=" + url.QueryEscape(schema)
}
