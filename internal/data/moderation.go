package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// moderationRepo implements the moderation ledger on sqlite.
type moderationRepo struct {
	db *sql.DB
}

// NewModerationRepo creates a new moderation repository.
func NewModerationRepo(db *sql.DB) repo.ModerationRepo {
	return &moderationRepo{db: db}
}

// AddWarn upserts the warn counter in a single statement. The conflict
// clause makes the increment atomic under concurrent moderators; a
// read-then-write here would lose updates.
func (r *moderationRepo) AddWarn(ctx context.Context, chatID, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO warns (chat_id, user_id, count) VALUES (?, ?, 1)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET count = count + 1
		RETURNING count
	`, chatID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to add warn: %w", err)
	}
	return count, nil
}

// RemoveWarn decrements the counter and deletes the record at zero, so
// a fully unwarned user is indistinguishable from a never-warned one.
func (r *moderationRepo) RemoveWarn(ctx context.Context, chatID, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT count FROM warns WHERE chat_id = ? AND user_id = ?
	`, chatID, userID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read warns: %w", err)
	}

	count--
	if count <= 0 {
		if _, err := r.db.ExecContext(ctx, `
			DELETE FROM warns WHERE chat_id = ? AND user_id = ?
		`, chatID, userID); err != nil {
			return 0, fmt.Errorf("failed to delete warn record: %w", err)
		}
		return 0, nil
	}
	if _, err := r.db.ExecContext(ctx, `
		UPDATE warns SET count = ? WHERE chat_id = ? AND user_id = ?
	`, count, chatID, userID); err != nil {
		return 0, fmt.Errorf("failed to update warns: %w", err)
	}
	return count, nil
}

// ResetWarns deletes the user's warn record.
func (r *moderationRepo) ResetWarns(ctx context.Context, chatID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM warns WHERE chat_id = ? AND user_id = ?
	`, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to reset warns: %w", err)
	}
	return nil
}

// GetWarns returns the user's warn count; no record means zero.
func (r *moderationRepo) GetWarns(ctx context.Context, chatID, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT count FROM warns WHERE chat_id = ? AND user_id = ?
	`, chatID, userID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read warns: %w", err)
	}
	return count, nil
}

// SetWarnLimit sets the chat's warn limit.
func (r *moderationRepo) SetWarnLimit(ctx context.Context, chatID int64, limit int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO warn_limits (chat_id, warn_limit) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET warn_limit = excluded.warn_limit
	`, chatID, limit)
	if err != nil {
		return fmt.Errorf("failed to set warn limit: %w", err)
	}
	return nil
}

// GetWarnLimit returns the chat's warn limit, defaulting when unset.
func (r *moderationRepo) GetWarnLimit(ctx context.Context, chatID int64) (int, error) {
	var limit int
	err := r.db.QueryRowContext(ctx, `
		SELECT warn_limit FROM warn_limits WHERE chat_id = ?
	`, chatID).Scan(&limit)
	if err == sql.ErrNoRows {
		return domain.DefaultWarnLimit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read warn limit: %w", err)
	}
	return limit, nil
}

// AddBlacklist flags a user; already-listed users are a no-op.
func (r *moderationRepo) AddBlacklist(ctx context.Context, chatID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO blacklist (chat_id, user_id) VALUES (?, ?)
	`, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to add to blacklist: %w", err)
	}
	return nil
}

// RemoveBlacklist unflags a user.
func (r *moderationRepo) RemoveBlacklist(ctx context.Context, chatID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM blacklist WHERE chat_id = ? AND user_id = ?
	`, chatID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove from blacklist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetBlacklist lists the chat's blacklisted user ids.
func (r *moderationRepo) GetBlacklist(ctx context.Context, chatID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM blacklist WHERE chat_id = ? ORDER BY id
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
