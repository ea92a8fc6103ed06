package stores

import (
	"context"
	"testing"
	"time"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) *RunStore {
	t.Helper()

	store, err := NewRunStore(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunStore_Lifecycle(t *testing.T) {
	store, err := NewRunStore(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.HealthCheck(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestRunStore_RequiresPath(t *testing.T) {
	if _, err := NewRunStore(Config{}); err == nil {
		t.Fatal("expected an error for an empty database path")
	}
}

func TestRunStore_CreateAndGetRun(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	run := &Run{
		ID:          "f6a7b9e0-0000-0000-0000-000000000001",
		ConfigPath:  "plo.cfg",
		VaspDir:     "./calc",
		Status:      RunStatusCompleted,
		Advisories:  2,
		Snapshot:    "shells:\n  - user_index: 1\n",
		StartedAt:   now,
		CompletedAt: now.Add(time.Second),
	}
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got.ConfigPath != "plo.cfg" || got.Status != RunStatusCompleted {
		t.Errorf("got %+v", got)
	}
	if got.Advisories != 2 {
		t.Errorf("advisories = %d, want 2", got.Advisories)
	}
	if got.Snapshot != run.Snapshot {
		t.Errorf("snapshot = %q", got.Snapshot)
	}
}

func TestRunStore_GetMissingRun(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetRun(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for a missing run")
	}
}

func TestRunStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		msg := "parse failed"
		run := &Run{
			ID:          "f6a7b9e0-0000-0000-0000-00000000000" + string(rune('1'+i)),
			ConfigPath:  "plo.cfg",
			Status:      RunStatusFailed,
			Error:       &msg,
			StartedAt:   base,
			CompletedAt: base,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("failed to create run %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].CreatedAt.Before(runs[1].CreatedAt) {
		t.Error("runs not ordered newest first")
	}
	if runs[0].Error == nil || *runs[0].Error != "parse failed" {
		t.Error("error message not round-tripped")
	}
}
