package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// MatcherUsecase decides which rule, if any, fires for a message.
type MatcherUsecase struct {
	rules repo.RuleRepo
}

// NewMatcherUsecase creates a new matcher usecase.
func NewMatcherUsecase(rules repo.RuleRepo) *MatcherUsecase {
	return &MatcherUsecase{rules: rules}
}

// Match returns the first rule whose trigger matches the text, or nil.
// Plain triggers match case-insensitively on heuristic word boundaries
// (surrounding spaces, start or end of the text, or whole-text equality);
// punctuation next to a trigger defeats the match and that is intended.
// r"..." triggers run a case-insensitive unanchored search on the
// original-case text; a pattern that fails to compile is logged and the
// rule is skipped.
func (uc *MatcherUsecase) Match(ctx context.Context, chatID int64, text string) (*domain.Rule, error) {
	rules, err := uc.rules.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	// Most messages hit chats with no rules at all; bail out before
	// lowercasing anything.
	if len(rules) == 0 {
		return nil, nil
	}

	textLC := strings.ToLower(text)
	for i := range rules {
		r := &rules[i]
		if r.IsRegexTrigger() {
			re, err := regexp.Compile("(?i)" + r.RegexPattern())
			if err != nil {
				log.Printf("[matcher] bad pattern %q in chat %d: %v", r.RegexPattern(), chatID, err)
				continue
			}
			if re.MatchString(text) {
				return r, nil
			}
			continue
		}

		trig := strings.ToLower(r.Trigger)
		if textLC == trig ||
			strings.Contains(textLC, " "+trig+" ") ||
			strings.HasPrefix(textLC, trig+" ") ||
			strings.HasSuffix(textLC, " "+trig) {
			return r, nil
		}
	}
	return nil, nil
}
