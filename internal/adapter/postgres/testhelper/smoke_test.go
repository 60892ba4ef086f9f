package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	conv := SeedConversation(t, pool)

	var title string
	err := pool.QueryRow(
		context.Background(),
		`SELECT title FROM conversations WHERE id = $1`,
		conv.ID,
	).Scan(&title)
	if err != nil {
		t.Fatalf("expected conversation in DB, got error: %v", err)
	}

	if title != conv.Title {
		t.Fatalf("expected title %q, got %q", conv.Title, title)
	}
}
