package repo

import (
	"context"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

// RuleRepo persists trigger→response rules. ListByChat returns rules in
// insertion order, which is the matching priority order.
type RuleRepo interface {
	Add(ctx context.Context, rule *domain.Rule) error
	ListByChat(ctx context.Context, chatID int64) ([]domain.Rule, error)
	Remove(ctx context.Context, chatID int64, trigger string) (bool, error)
	RemoveAll(ctx context.Context, chatID int64) (int64, error)

	// ReplaceAll deletes the chat's rules and inserts the given ones in
	// order, all within a single transaction.
	ReplaceAll(ctx context.Context, chatID int64, rules []domain.Rule) error
}
