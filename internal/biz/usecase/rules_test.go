package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestAdd_DuplicateTrigger(t *testing.T) {
	repo := &mockRuleRepo{}
	uc := NewRulesUsecase(repo)
	ctx := context.Background()

	if err := uc.Add(ctx, 1, "hello", "hi", nil); err != nil {
		t.Fatal(err)
	}
	err := uc.Add(ctx, 1, "hello", "other", nil)
	if !errors.Is(err, ErrDuplicateTrigger) {
		t.Fatalf("expected ErrDuplicateTrigger, got %v", err)
	}
	// Same trigger in a different chat is fine.
	if err := uc.Add(ctx, 2, "hello", "hi", nil); err != nil {
		t.Fatal(err)
	}
}

func TestParseFilterCommand(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		trigger  string
		response string
		ok       bool
	}{
		{"bare", "/filter hello hi there", "hello", "hi there", true},
		{"quoted", `/filter "good morning" hello`, "good morning", "hello", true},
		{"regex", `/filter r"go+al" scored`, `r"go+al"`, "scored", true},
		{"regex quoted response", `/filter r"go+al" "scored big"`, `r"go+al"`, "scored big", true},
		{"missing response", "/filter hello", "", "", false},
		{"unterminated quote", `/filter "good morning hello`, "", "", false},
		{"unterminated regex", `/filter r"go+al scored`, "", "", false},
		{"empty", "/filter", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trigger, response, ok := ParseFilterCommand(tc.text)
			if ok != tc.ok || trigger != tc.trigger || response != tc.response {
				t.Errorf("ParseFilterCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.text, trigger, response, ok, tc.trigger, tc.response, tc.ok)
			}
		})
	}
}
