package server

import (
	"context"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/data"
	"github.com/gadobot/gadobot/internal/service"
)

// TelegramServer receives updates over long polling and dispatches
// them to the command service.
type TelegramServer struct {
	bot data.TelegramBot
	svc *service.CommandService

	// Update deduplication cache
	seenMu   sync.Mutex
	seen     map[int]time.Time // updateID -> timestamp
	lastSeen time.Time

	wg   sync.WaitGroup
	stop chan struct{}
}

// NewTelegramServer creates a new Telegram server.
func NewTelegramServer(bot data.TelegramBot, svc *service.CommandService) *TelegramServer {
	return &TelegramServer{
		bot:  bot,
		svc:  svc,
		seen: make(map[int]time.Time),
		stop: make(chan struct{}),
	}
}

// Start begins long polling. Blocks until Stop is called.
func (s *TelegramServer) Start() error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := s.bot.GetUpdatesChan(cfg)

	log.Printf("[server] polling as @%s", s.bot.GetSelf().UserName)

	for {
		select {
		case <-s.stop:
			s.wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				s.wg.Wait()
				return nil
			}
			if update.Message == nil || s.isSeen(update.UpdateID) {
				continue
			}
			s.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer s.wg.Done()
				s.handleMessage(context.Background(), msg)
			}(update.Message)
		}
	}
}

// Stop stops polling and waits for in-flight handlers.
func (s *TelegramServer) Stop() {
	s.bot.StopReceivingUpdates()
	close(s.stop)
}

func (s *TelegramServer) isSeen(updateID int) bool {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSeen) > time.Minute {
		for id, t := range s.seen {
			if now.Sub(t) > 10*time.Minute {
				delete(s.seen, id)
			}
		}
		s.lastSeen = now
	}

	if _, ok := s.seen[updateID]; ok {
		return true
	}
	s.seen[updateID] = now
	return false
}

func (s *TelegramServer) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	// Group chats only; private chats get the help text path via /start.
	if msg.Chat.IsPrivate() && !msg.IsCommand() {
		return
	}

	in := buildIncoming(msg)

	if !msg.IsCommand() {
		if in.Text != "" {
			s.svc.HandleText(ctx, in)
		}
		return
	}

	switch msg.Command() {
	case "start":
		s.svc.Start(ctx, in)
	case "help":
		s.svc.Help(ctx, in)
	case "filter":
		s.svc.Filter(ctx, in)
	case "filters":
		s.svc.Filters(ctx, in)
	case "remove_filter":
		s.svc.RemoveFilter(ctx, in)
	case "remove_all_filters":
		s.svc.RemoveAllFilters(ctx, in)
	case "export":
		s.svc.Export(ctx, in)
	case "import":
		s.svc.Import(ctx, in)
	case "warn":
		s.svc.Warn(ctx, in)
	case "unwarn":
		s.svc.Unwarn(ctx, in)
	case "limitwarn":
		s.svc.LimitWarn(ctx, in)
	case "ban":
		s.svc.Ban(ctx, in)
	case "unban":
		s.svc.Unban(ctx, in)
	case "mute":
		s.svc.Mute(ctx, in)
	case "unmute":
		s.svc.Unmute(ctx, in)
	case "kick":
		s.svc.Kick(ctx, in)
	case "kickme":
		s.svc.KickMe(ctx, in)
	case "checkhistory":
		s.svc.CheckHistory(ctx, in)
	case "blacklist":
		s.svc.Blacklist(ctx, in)
	case "addblacklist":
		s.svc.AddBlacklist(ctx, in)
	case "removeblacklist":
		s.svc.RemoveBlacklist(ctx, in)
	case "stats":
		s.svc.Stats(ctx, in)
	case "stats_global":
		s.svc.StatsGlobal(ctx, in)
	case "lang":
		s.svc.Lang(ctx, in)
	case "ADM_send":
		s.svc.AdmSend(ctx, in)
	}
}

func buildIncoming(msg *tgbotapi.Message) *service.Incoming {
	in := &service.Incoming{
		ChatID:       msg.Chat.ID,
		ChatTitle:    msg.Chat.Title,
		ChatUsername: msg.Chat.UserName,
		MessageID:    msg.MessageID,
		SenderID:     msg.From.ID,
		SenderLang:   msg.From.LanguageCode,
		Text:         msg.Text,
	}
	if in.Text == "" {
		in.Text = msg.Caption
	}

	// /import carries the backup as the attached document.
	if msg.Document != nil {
		in.Document = &service.DocumentRef{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
		}
	}

	if reply := msg.ReplyToMessage; reply != nil {
		info := &service.ReplyInfo{Text: reply.Text}
		if reply.From != nil {
			info.SenderID = reply.From.ID
		}
		if reply.Caption != "" {
			info.Text = reply.Caption
		}
		info.Media = replyMedia(reply)
		in.ReplyTo = info
	}
	return in
}

// replyMedia extracts the attachment of a replied-to message, if any.
// Photos come as size variants; the last one is the original.
func replyMedia(msg *tgbotapi.Message) *domain.FileRef {
	switch {
	case len(msg.Photo) > 0:
		return &domain.FileRef{ID: msg.Photo[len(msg.Photo)-1].FileID, Type: domain.FileTypePhoto}
	case msg.Video != nil:
		return &domain.FileRef{ID: msg.Video.FileID, Type: domain.FileTypeVideo}
	case msg.Animation != nil:
		return &domain.FileRef{ID: msg.Animation.FileID, Type: domain.FileTypeAnimation}
	case msg.Document != nil:
		return &domain.FileRef{ID: msg.Document.FileID, Type: domain.FileTypeDocument}
	}
	return nil
}
