package repo

import (
	"context"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

// ChatRepo keeps the registry of chats the bot has seen and per-user
// language preferences.
type ChatRepo interface {
	RegisterChat(ctx context.Context, chat *domain.Chat) error
	ListChats(ctx context.Context) ([]domain.Chat, error)

	RegisterUser(ctx context.Context, userID int64, lang string) error
	GetUserLang(ctx context.Context, userID int64) (string, error)
	SetUserLang(ctx context.Context, userID int64, lang string) error
}
