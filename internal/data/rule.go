package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// ruleRepo implements the rule repository on sqlite.
type ruleRepo struct {
	db *sql.DB
}

// NewRuleRepo creates a new rule repository.
func NewRuleRepo(db *sql.DB) repo.RuleRepo {
	return &ruleRepo{db: db}
}

// Add inserts a rule at the end of the chat's match order.
func (r *ruleRepo) Add(ctx context.Context, rule *domain.Rule) error {
	var fileID, fileType sql.NullString
	if rule.File != nil {
		fileID = sql.NullString{String: rule.File.ID, Valid: true}
		fileType = sql.NullString{String: rule.File.Type.String(), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO filters (chat_id, trigger, response, file_id, file_type)
		VALUES (?, ?, ?, ?, ?)
	`, rule.ChatID, rule.Trigger, rule.Response, fileID, fileType)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rule.ID = id
	}
	return nil
}

// ListByChat returns the chat's rules in insertion order.
func (r *ruleRepo) ListByChat(ctx context.Context, chatID int64) ([]domain.Rule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, trigger, response, file_id, file_type
		FROM filters
		WHERE chat_id = ?
		ORDER BY id
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Remove deletes the rule with the given trigger.
func (r *ruleRepo) Remove(ctx context.Context, chatID int64, trigger string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM filters WHERE chat_id = ? AND trigger = ?
	`, chatID, trigger)
	if err != nil {
		return false, fmt.Errorf("failed to remove rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveAll deletes every rule of the chat.
func (r *ruleRepo) RemoveAll(ctx context.Context, chatID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filters WHERE chat_id = ?`, chatID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove rules: %w", err)
	}
	return res.RowsAffected()
}

// ReplaceAll swaps the chat's rule set in one transaction so concurrent
// readers see either the old set or the new one, never a partial state.
func (r *ruleRepo) ReplaceAll(ctx context.Context, chatID int64, rules []domain.Rule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM filters WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}
	for i := range rules {
		rule := &rules[i]
		var fileID, fileType sql.NullString
		if rule.File != nil {
			fileID = sql.NullString{String: rule.File.ID, Valid: true}
			fileType = sql.NullString{String: rule.File.Type.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO filters (chat_id, trigger, response, file_id, file_type)
			VALUES (?, ?, ?, ?, ?)
		`, chatID, rule.Trigger, rule.Response, fileID, fileType); err != nil {
			return fmt.Errorf("failed to insert rule %q: %w", rule.Trigger, err)
		}
	}
	return tx.Commit()
}

func scanRule(rows *sql.Rows) (domain.Rule, error) {
	var rule domain.Rule
	var fileID, fileType sql.NullString
	if err := rows.Scan(&rule.ID, &rule.ChatID, &rule.Trigger, &rule.Response, &fileID, &fileType); err != nil {
		return rule, fmt.Errorf("failed to scan rule: %w", err)
	}
	if fileID.Valid && fileType.Valid {
		if ft, ok := domain.ParseFileType(fileType.String); ok {
			rule.File = &domain.FileRef{ID: fileID.String, Type: ft}
		}
	}
	return rule, nil
}
