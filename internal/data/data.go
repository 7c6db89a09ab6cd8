package data

import (
	"database/sql"

	"github.com/gadobot/gadobot/internal/biz/repo"
)

// Repositories contains all repositories.
type Repositories struct {
	Rules      repo.RuleRepo
	Moderation repo.ModerationRepo
	Chats      repo.ChatRepo
	Transport  repo.Transport

	db *sql.DB
}

// NewRepositories opens the database and wires up all repositories.
func NewRepositories(dbPath string, bot TelegramBot, token string) (*Repositories, error) {
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Rules:      NewRuleRepo(db),
		Moderation: NewModerationRepo(db),
		Chats:      NewChatRepo(db),
		Transport:  NewTelegramTransport(bot, token),
		db:         db,
	}, nil
}

// Close closes the database connection.
func (r *Repositories) Close() error {
	return r.db.Close()
}
