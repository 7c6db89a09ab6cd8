package data

import (
	"context"
	"sync"
	"testing"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

func TestModerationRepo_WarnLifecycle(t *testing.T) {
	repo := NewModerationRepo(openTestDB(t))
	ctx := context.Background()

	count, err := repo.AddWarn(ctx, 1, 42)
	if err != nil || count != 1 {
		t.Fatalf("first warn = (%d, %v)", count, err)
	}
	count, _ = repo.AddWarn(ctx, 1, 42)
	if count != 2 {
		t.Fatalf("second warn = %d, want 2", count)
	}

	// Other users and chats keep their own counters.
	if count, _ = repo.AddWarn(ctx, 1, 43); count != 1 {
		t.Errorf("user 43 count = %d, want 1", count)
	}
	if count, _ = repo.AddWarn(ctx, 2, 42); count != 1 {
		t.Errorf("chat 2 count = %d, want 1", count)
	}

	count, err = repo.RemoveWarn(ctx, 1, 42)
	if err != nil || count != 1 {
		t.Fatalf("unwarn = (%d, %v)", count, err)
	}
	count, _ = repo.RemoveWarn(ctx, 1, 42)
	if count != 0 {
		t.Fatalf("second unwarn = %d, want 0", count)
	}
	// Floors at zero.
	count, err = repo.RemoveWarn(ctx, 1, 42)
	if err != nil || count != 0 {
		t.Fatalf("unwarn on clean user = (%d, %v)", count, err)
	}
}

func TestModerationRepo_AddWarnConcurrent(t *testing.T) {
	repo := NewModerationRepo(openTestDB(t))
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddWarn(ctx, 1, 42); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	count, err := repo.GetWarns(ctx, 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Fatalf("concurrent warns lost increments: got %d, want %d", count, n)
	}
}

func TestModerationRepo_ResetWarns(t *testing.T) {
	repo := NewModerationRepo(openTestDB(t))
	ctx := context.Background()

	repo.AddWarn(ctx, 1, 42)
	repo.AddWarn(ctx, 1, 42)
	if err := repo.ResetWarns(ctx, 1, 42); err != nil {
		t.Fatal(err)
	}
	if count, _ := repo.GetWarns(ctx, 1, 42); count != 0 {
		t.Fatalf("count after reset = %d", count)
	}
}

func TestModerationRepo_WarnLimit(t *testing.T) {
	repo := NewModerationRepo(openTestDB(t))
	ctx := context.Background()

	limit, err := repo.GetWarnLimit(ctx, 1)
	if err != nil || limit != domain.DefaultWarnLimit {
		t.Fatalf("default limit = (%d, %v)", limit, err)
	}

	if err := repo.SetWarnLimit(ctx, 1, 5); err != nil {
		t.Fatal(err)
	}
	if limit, _ = repo.GetWarnLimit(ctx, 1); limit != 5 {
		t.Fatalf("limit after set = %d", limit)
	}
	// Overwrite.
	repo.SetWarnLimit(ctx, 1, 0)
	if limit, _ = repo.GetWarnLimit(ctx, 1); limit != 0 {
		t.Fatalf("limit after overwrite = %d", limit)
	}
	// Other chats keep the default.
	if limit, _ = repo.GetWarnLimit(ctx, 2); limit != domain.DefaultWarnLimit {
		t.Fatalf("chat 2 limit = %d", limit)
	}
}

func TestModerationRepo_Blacklist(t *testing.T) {
	repo := NewModerationRepo(openTestDB(t))
	ctx := context.Background()

	if err := repo.AddBlacklist(ctx, 1, 42); err != nil {
		t.Fatal(err)
	}
	// Adding twice is not an error.
	if err := repo.AddBlacklist(ctx, 1, 42); err != nil {
		t.Fatal(err)
	}

	ids, err := repo.GetBlacklist(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 42 {
		t.Fatalf("blacklist = %v", ids)
	}

	removed, err := repo.RemoveBlacklist(ctx, 1, 42)
	if err != nil || !removed {
		t.Fatalf("remove = (%v, %v)", removed, err)
	}
	removed, _ = repo.RemoveBlacklist(ctx, 1, 42)
	if removed {
		t.Fatal("second remove reported true")
	}
}
