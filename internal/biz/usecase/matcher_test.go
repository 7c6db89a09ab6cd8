package usecase

import (
	"context"
	"testing"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

func TestMatch_WordBoundaries(t *testing.T) {
	repo := &mockRuleRepo{rules: []domain.Rule{
		{ChatID: 1, Trigger: "hello", Response: "hi"},
	}}
	uc := NewMatcherUsecase(repo)

	cases := []struct {
		text string
		want bool
	}{
		{"hello", true},
		{"hello there", true},
		{"well hello there", true},
		{"say hello", true},
		{"HELLO", true},
		{"Say Hello There", true},
		{"hello, world", false}, // punctuation defeats the boundary heuristic
		{"hellothere", false},
		{"othello", false},
		{"", false},
	}
	for _, tc := range cases {
		rule, err := uc.Match(context.Background(), 1, tc.text)
		if err != nil {
			t.Fatalf("Match(%q): %v", tc.text, err)
		}
		if got := rule != nil; got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestMatch_Regex(t *testing.T) {
	repo := &mockRuleRepo{rules: []domain.Rule{
		{ChatID: 1, Trigger: `r"go+al"`, Response: "scored"},
	}}
	uc := NewMatcherUsecase(repo)

	rule, err := uc.Match(context.Background(), 1, "GOOOOAL everyone")
	if err != nil {
		t.Fatal(err)
	}
	if rule == nil || rule.Response != "scored" {
		t.Fatalf("expected regex rule to fire, got %+v", rule)
	}

	rule, err = uc.Match(context.Background(), 1, "nothing here")
	if err != nil {
		t.Fatal(err)
	}
	if rule != nil {
		t.Fatalf("expected no match, got %+v", rule)
	}
}

func TestMatch_BadRegexSkipped(t *testing.T) {
	repo := &mockRuleRepo{rules: []domain.Rule{
		{ChatID: 1, Trigger: `r"[unclosed"`, Response: "never"},
		{ChatID: 1, Trigger: "ok", Response: "fine"},
	}}
	uc := NewMatcherUsecase(repo)

	rule, err := uc.Match(context.Background(), 1, "ok")
	if err != nil {
		t.Fatal(err)
	}
	if rule == nil || rule.Response != "fine" {
		t.Fatalf("expected later rule after bad pattern, got %+v", rule)
	}
}

func TestMatch_FirstRuleWins(t *testing.T) {
	repo := &mockRuleRepo{rules: []domain.Rule{
		{ChatID: 1, Trigger: "cat", Response: "first"},
		{ChatID: 1, Trigger: "cat", Response: "second"},
	}}
	uc := NewMatcherUsecase(repo)

	rule, err := uc.Match(context.Background(), 1, "cat")
	if err != nil {
		t.Fatal(err)
	}
	if rule == nil || rule.Response != "first" {
		t.Fatalf("expected first rule, got %+v", rule)
	}
}

func TestMatch_ChatIsolation(t *testing.T) {
	repo := &mockRuleRepo{rules: []domain.Rule{
		{ChatID: 1, Trigger: "hello", Response: "hi"},
	}}
	uc := NewMatcherUsecase(repo)

	rule, err := uc.Match(context.Background(), 2, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if rule != nil {
		t.Fatalf("rule leaked across chats: %+v", rule)
	}
}
