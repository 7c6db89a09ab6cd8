package repo

import (
	"context"
	"time"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

// Transport is the outbound side of the chat platform. All calls may
// fail transiently; callers report failures to the user and never retry.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	ReplyText(ctx context.Context, chatID int64, replyTo int, text string) error
	ReplyMedia(ctx context.Context, chatID int64, replyTo int, file domain.FileRef, caption string) error
	SendDocument(ctx context.Context, chatID int64, filename string, content []byte, caption string) error
	DownloadDocument(ctx context.Context, fileID string) ([]byte, error)

	// BanMember bans a user. A zero until means permanent.
	BanMember(ctx context.Context, chatID, userID int64, until time.Time) error
	UnbanMember(ctx context.Context, chatID, userID int64) error
	// RestrictMember mutes (canSend=false) or unmutes a user.
	RestrictMember(ctx context.Context, chatID, userID int64, canSend bool, until time.Time) error

	GetMember(ctx context.Context, chatID, userID int64) (*domain.MemberInfo, error)
	MemberCount(ctx context.Context, chatID int64) (int, error)

	// BotID is the bot's own user id on the platform.
	BotID() int64
}
