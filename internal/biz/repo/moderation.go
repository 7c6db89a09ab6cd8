package repo

import "context"

// ModerationRepo persists warn counters, warn limits and the blacklist.
type ModerationRepo interface {
	// AddWarn increments the user's warn counter and returns the new
	// count. The increment must be a single atomic upsert; concurrent
	// calls for the same (chat, user) must not lose increments.
	AddWarn(ctx context.Context, chatID, userID int64) (int, error)

	// RemoveWarn decrements the counter, flooring at zero, and deletes
	// the record when it reaches zero. Returns the new count.
	RemoveWarn(ctx context.Context, chatID, userID int64) (int, error)

	ResetWarns(ctx context.Context, chatID, userID int64) error
	GetWarns(ctx context.Context, chatID, userID int64) (int, error)

	SetWarnLimit(ctx context.Context, chatID int64, limit int) error
	// GetWarnLimit returns the chat's warn limit, or the default when unset.
	GetWarnLimit(ctx context.Context, chatID int64) (int, error)

	AddBlacklist(ctx context.Context, chatID, userID int64) error
	RemoveBlacklist(ctx context.Context, chatID, userID int64) (bool, error)
	GetBlacklist(ctx context.Context, chatID int64) ([]int64, error)
}
