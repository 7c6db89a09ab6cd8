package domain

import (
	"testing"
	"time"
)

func TestParseCommandArgs_NumericID(t *testing.T) {
	args := ParseCommandArgs("/ban 12345 7d spamming links", 0, false)
	if !args.HasUserID || args.UserID != 12345 {
		t.Fatalf("target not parsed: %+v", args)
	}
	if !args.HasDuration || args.Duration != 7*24*time.Hour {
		t.Errorf("duration not parsed: %+v", args)
	}
	if args.Reason != "spamming links" {
		t.Errorf("reason = %q", args.Reason)
	}
}

func TestParseCommandArgs_ReplyOverridesText(t *testing.T) {
	args := ParseCommandArgs("/warn 12345 being rude", 777, true)
	if args.UserID != 777 {
		t.Fatalf("reply target must win, got %d", args.UserID)
	}
	if args.Mention != "" {
		t.Errorf("mention should be cleared, got %q", args.Mention)
	}
}

func TestParseCommandArgs_MentionOnly(t *testing.T) {
	args := ParseCommandArgs("/kick @someone trolling", 0, false)
	if args.HasUserID {
		t.Fatal("a bare mention must not produce a user id")
	}
	if args.Mention != "@someone" || !args.HasTarget() {
		t.Errorf("mention not kept: %+v", args)
	}
	if args.Reason != "trolling" {
		t.Errorf("reason = %q", args.Reason)
	}
}

func TestParseCommandArgs_IDOverridesMention(t *testing.T) {
	args := ParseCommandArgs("/ban @someone 12345", 0, false)
	if !args.HasUserID || args.UserID != 12345 || args.Mention != "" {
		t.Fatalf("numeric id must override the mention: %+v", args)
	}
}

func TestParseCommandArgs_NoTarget(t *testing.T) {
	args := ParseCommandArgs("/ban", 0, false)
	if args.HasTarget() {
		t.Fatalf("unexpected target: %+v", args)
	}
}

func TestParseDurationArg(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"7d", 7 * 24 * time.Hour, true},
		{"12h", 12 * time.Hour, true},
		{"30m", 30 * time.Minute, true},
		{"1d", 24 * time.Hour, true},
		{"d", 0, false},
		{"7w", 0, false},
		{"7", 0, false},
		{"", 0, false},
		{"h7", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseDurationArg(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseDurationArg(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBanDirective(t *testing.T) {
	d, directive, ok := BanDirective("b::3h")
	if !directive || !ok || d != 3*time.Hour {
		t.Errorf("b::3h = (%v, %v, %v)", d, directive, ok)
	}

	_, directive, ok = BanDirective("b::soon")
	if !directive || ok {
		t.Errorf("b::soon should be a directive with a bad duration")
	}

	_, directive, _ = BanDirective("hello there")
	if directive {
		t.Error("plain text mistaken for a directive")
	}
}
