package store

import (
	"context"
	"os"
	"testing"
)

func TestEnsureSchema(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping database test")
	}

	db, err := OpenPostgres(url)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// Idempotent: applying twice must not fail.
	ctx := context.Background()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	for _, table := range []string{"menu_items", "categories", "users", "transactions"} {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT count(*) FROM `+table).Scan(&n); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}
}
