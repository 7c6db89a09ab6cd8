package data

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRuleRepo_AddAndList(t *testing.T) {
	repo := NewRuleRepo(openTestDB(t))
	ctx := context.Background()

	rules := []domain.Rule{
		{ChatID: 1, Trigger: "hello", Response: "hi"},
		{ChatID: 1, Trigger: "cat", Response: "Media response", File: &domain.FileRef{ID: "abc", Type: domain.FileTypePhoto}},
		{ChatID: 2, Trigger: "other", Response: "chat"},
	}
	for i := range rules {
		if err := repo.Add(ctx, &rules[i]); err != nil {
			t.Fatal(err)
		}
		if rules[i].ID == 0 {
			t.Fatal("Add did not set the rule id")
		}
	}

	got, err := repo.ListByChat(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("chat 1 has %d rules, want 2", len(got))
	}
	if got[0].Trigger != "hello" || got[1].Trigger != "cat" {
		t.Errorf("insertion order lost: %v, %v", got[0].Trigger, got[1].Trigger)
	}
	if got[1].File == nil || got[1].File.ID != "abc" || got[1].File.Type != domain.FileTypePhoto {
		t.Errorf("file fields lost: %+v", got[1].File)
	}
	if got[0].File != nil {
		t.Errorf("text rule grew a file: %+v", got[0].File)
	}
}

func TestRuleRepo_Remove(t *testing.T) {
	repo := NewRuleRepo(openTestDB(t))
	ctx := context.Background()

	repo.Add(ctx, &domain.Rule{ChatID: 1, Trigger: "hello", Response: "hi"})

	removed, err := repo.Remove(ctx, 1, "hello")
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v)", removed, err)
	}
	removed, err = repo.Remove(ctx, 1, "hello")
	if err != nil || removed {
		t.Fatalf("second Remove = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestRuleRepo_RemoveAll(t *testing.T) {
	repo := NewRuleRepo(openTestDB(t))
	ctx := context.Background()

	repo.Add(ctx, &domain.Rule{ChatID: 1, Trigger: "a", Response: "1"})
	repo.Add(ctx, &domain.Rule{ChatID: 1, Trigger: "b", Response: "2"})
	repo.Add(ctx, &domain.Rule{ChatID: 2, Trigger: "c", Response: "3"})

	n, err := repo.RemoveAll(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if left, _ := repo.ListByChat(ctx, 2); len(left) != 1 {
		t.Errorf("chat 2 lost rules: %v", left)
	}
}

func TestRuleRepo_ReplaceAll(t *testing.T) {
	repo := NewRuleRepo(openTestDB(t))
	ctx := context.Background()

	repo.Add(ctx, &domain.Rule{ChatID: 1, Trigger: "old", Response: "rule"})

	err := repo.ReplaceAll(ctx, 1, []domain.Rule{
		{ChatID: 1, Trigger: "new1", Response: "a"},
		{ChatID: 1, Trigger: "new2", Response: "b", File: &domain.FileRef{ID: "f", Type: domain.FileTypeVideo}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := repo.ListByChat(ctx, 1)
	if len(got) != 2 || got[0].Trigger != "new1" || got[1].Trigger != "new2" {
		t.Fatalf("replace result: %+v", got)
	}
}
