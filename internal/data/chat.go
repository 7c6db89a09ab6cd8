package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// chatRepo implements the chat/user registry on sqlite.
type chatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new chat repository.
func NewChatRepo(db *sql.DB) repo.ChatRepo {
	return &chatRepo{db: db}
}

// RegisterChat upserts the chat, keeping its name and username fresh.
// The language is only set on first sight.
func (r *chatRepo) RegisterChat(ctx context.Context, chat *domain.Chat) error {
	lang := chat.Lang
	if lang == "" {
		lang = "eng"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chats (chat_id, name, username, lang) VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET name = excluded.name, username = excluded.username
	`, chat.ID, chat.Name, chat.Username, lang)
	if err != nil {
		return fmt.Errorf("failed to register chat: %w", err)
	}
	return nil
}

// ListChats returns every registered chat.
func (r *chatRepo) ListChats(ctx context.Context) ([]domain.Chat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, name, username, lang FROM chats ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var c domain.Chat
		var username sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &username, &c.Lang); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		c.Username = username.String
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// RegisterUser records a user on first sight; existing users keep their
// stored language.
func (r *chatRepo) RegisterUser(ctx context.Context, userID int64, lang string) error {
	if lang == "" {
		lang = "eng"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (user_id, lang) VALUES (?, ?)
	`, userID, lang)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// GetUserLang returns the user's stored language, or "eng".
func (r *chatRepo) GetUserLang(ctx context.Context, userID int64) (string, error) {
	var lang string
	err := r.db.QueryRowContext(ctx, `
		SELECT lang FROM users WHERE user_id = ?
	`, userID).Scan(&lang)
	if err == sql.ErrNoRows || (err == nil && lang == "") {
		return "eng", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read user lang: %w", err)
	}
	return lang, nil
}

// SetUserLang stores the user's preferred language.
func (r *chatRepo) SetUserLang(ctx context.Context, userID int64, lang string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET lang = ? WHERE user_id = ?
	`, lang, userID)
	if err != nil {
		return fmt.Errorf("failed to set user lang: %w", err)
	}
	return nil
}
