package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// TelegramBot is the subset of the Telegram API the bot uses. Wrapping
// it in an interface keeps the transport mockable.
type TelegramBot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetSelf() tgbotapi.User
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetChatMembersCount(config tgbotapi.ChatMemberCountConfig) (int, error)
}

// tgBotWrapper adapts tgbotapi.BotAPI to the TelegramBot interface.
type tgBotWrapper struct {
	bot *tgbotapi.BotAPI
}

func (w *tgBotWrapper) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return w.bot.GetUpdatesChan(config)
}

func (w *tgBotWrapper) StopReceivingUpdates() {
	w.bot.StopReceivingUpdates()
}

func (w *tgBotWrapper) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return w.bot.Send(c)
}

func (w *tgBotWrapper) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return w.bot.Request(c)
}

func (w *tgBotWrapper) GetSelf() tgbotapi.User {
	return w.bot.Self
}

func (w *tgBotWrapper) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	return w.bot.GetFile(config)
}

func (w *tgBotWrapper) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	return w.bot.GetChatMember(config)
}

func (w *tgBotWrapper) GetChatMembersCount(config tgbotapi.ChatMemberCountConfig) (int, error) {
	return w.bot.GetChatMembersCount(config)
}

// NewTelegramBot authorizes against the Telegram API.
func NewTelegramBot(token string) (TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &tgBotWrapper{bot: bot}, nil
}

// telegramTransport implements the outbound transport on Telegram.
type telegramTransport struct {
	bot        TelegramBot
	token      string
	httpClient *http.Client
}

// NewTelegramTransport creates a new Telegram transport repository.
func NewTelegramTransport(bot TelegramBot, token string) repo.Transport {
	return &telegramTransport{bot: bot, token: token, httpClient: http.DefaultClient}
}

func (t *telegramTransport) SendText(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (t *telegramTransport) ReplyText(ctx context.Context, chatID int64, replyTo int, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func (t *telegramTransport) ReplyMedia(ctx context.Context, chatID int64, replyTo int, file domain.FileRef, caption string) error {
	var msg tgbotapi.Chattable
	switch file.Type {
	case domain.FileTypePhoto:
		m := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(file.ID))
		m.Caption = caption
		m.ReplyToMessageID = replyTo
		msg = m
	case domain.FileTypeVideo:
		m := tgbotapi.NewVideo(chatID, tgbotapi.FileID(file.ID))
		m.Caption = caption
		m.ReplyToMessageID = replyTo
		msg = m
	case domain.FileTypeDocument:
		m := tgbotapi.NewDocument(chatID, tgbotapi.FileID(file.ID))
		m.Caption = caption
		m.ReplyToMessageID = replyTo
		msg = m
	case domain.FileTypeAnimation:
		m := tgbotapi.NewAnimation(chatID, tgbotapi.FileID(file.ID))
		m.Caption = caption
		m.ReplyToMessageID = replyTo
		msg = m
	default:
		return fmt.Errorf("unknown file type %q", file.Type)
	}
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send media: %w", err)
	}
	return nil
}

func (t *telegramTransport) SendDocument(ctx context.Context, chatID int64, filename string, content []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: content})
	doc.Caption = caption
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (t *telegramTransport) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	file, err := t.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get telegram file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(t.token), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download telegram file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download telegram file: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read telegram file body: %w", err)
	}
	return data, nil
}

func (t *telegramTransport) BanMember(ctx context.Context, chatID, userID int64, until time.Time) error {
	cfg := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	}
	if !until.IsZero() {
		cfg.UntilDate = until.Unix()
	}
	if _, err := t.bot.Request(cfg); err != nil {
		return fmt.Errorf("ban member: %w", err)
	}
	return nil
}

func (t *telegramTransport) UnbanMember(ctx context.Context, chatID, userID int64) error {
	cfg := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	}
	if _, err := t.bot.Request(cfg); err != nil {
		return fmt.Errorf("unban member: %w", err)
	}
	return nil
}

func (t *telegramTransport) RestrictMember(ctx context.Context, chatID, userID int64, canSend bool, until time.Time) error {
	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages:       canSend,
			CanSendMediaMessages:  canSend,
			CanSendPolls:          canSend,
			CanSendOtherMessages:  canSend,
			CanAddWebPagePreviews: canSend,
		},
	}
	if !until.IsZero() {
		cfg.UntilDate = until.Unix()
	}
	if _, err := t.bot.Request(cfg); err != nil {
		return fmt.Errorf("restrict member: %w", err)
	}
	return nil
}

func (t *telegramTransport) GetMember(ctx context.Context, chatID, userID int64) (*domain.MemberInfo, error) {
	member, err := t.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat member: %w", err)
	}
	return &domain.MemberInfo{
		Status:             domain.MemberStatus(member.Status),
		CanRestrictMembers: member.CanRestrictMembers,
		CanChangeInfo:      member.CanChangeInfo,
	}, nil
}

func (t *telegramTransport) MemberCount(ctx context.Context, chatID int64) (int, error) {
	count, err := t.bot.GetChatMembersCount(tgbotapi.ChatMemberCountConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return 0, fmt.Errorf("get member count: %w", err)
	}
	return count, nil
}

func (t *telegramTransport) BotID() int64 {
	return t.bot.GetSelf().ID
}
