package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// ErrDuplicateTrigger is returned when a chat already has a rule with
// the same trigger text.
var ErrDuplicateTrigger = errors.New("trigger already exists")

// RulesUsecase manages a chat's rule set.
type RulesUsecase struct {
	rules repo.RuleRepo
}

// NewRulesUsecase creates a new rules usecase.
func NewRulesUsecase(rules repo.RuleRepo) *RulesUsecase {
	return &RulesUsecase{rules: rules}
}

// Add stores a rule after rejecting duplicate triggers within the chat.
func (uc *RulesUsecase) Add(ctx context.Context, chatID int64, trigger, response string, file *domain.FileRef) error {
	existing, err := uc.rules.ListByChat(ctx, chatID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Trigger == trigger {
			return ErrDuplicateTrigger
		}
	}
	return uc.rules.Add(ctx, &domain.Rule{
		ChatID:   chatID,
		Trigger:  trigger,
		Response: response,
		File:     file,
	})
}

// List returns the chat's rules in match-priority order.
func (uc *RulesUsecase) List(ctx context.Context, chatID int64) ([]domain.Rule, error) {
	return uc.rules.ListByChat(ctx, chatID)
}

// Remove deletes the rule with the given trigger. Returns false when no
// such rule exists.
func (uc *RulesUsecase) Remove(ctx context.Context, chatID int64, trigger string) (bool, error) {
	return uc.rules.Remove(ctx, chatID, trigger)
}

// RemoveAll deletes every rule of the chat and returns how many were removed.
func (uc *RulesUsecase) RemoveAll(ctx context.Context, chatID int64) (int64, error) {
	return uc.rules.RemoveAll(ctx, chatID)
}

// ParseFilterCommand splits the /filter argument text into trigger and
// response. Three forms are accepted:
//
//	r"pattern" response   – regex trigger, quotes kept in the trigger
//	"multi word" response – quoted plain trigger, quotes stripped
//	word response...      – bare single-word trigger
//
// A response wrapped in quotes after an r"..." trigger loses them.
func ParseFilterCommand(text string) (trigger, response string, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(text, "/filter"))

	switch {
	case strings.HasPrefix(text, `r"`):
		end := strings.Index(text[2:], `"`)
		if end == -1 {
			return "", "", false
		}
		end += 2
		trigger = text[:end+1]
		response = strings.TrimSpace(text[end+1:])
		response = strings.TrimPrefix(response, `"`)
		response = strings.TrimSuffix(response, `"`)
		return trigger, response, trigger != "" && response != ""

	case strings.HasPrefix(text, `"`):
		end := strings.Index(text[1:], `"`)
		if end == -1 {
			return "", "", false
		}
		end++
		trigger = text[1:end]
		response = strings.TrimSpace(text[end+1:])
		return trigger, response, trigger != "" && response != ""

	default:
		parts := strings.SplitN(text, " ", 2)
		if len(parts) < 2 {
			return "", "", false
		}
		return parts[0], parts[1], parts[0] != "" && parts[1] != ""
	}
}
