package service

import (
	"context"
	"fmt"
	"log"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
	"github.com/gadobot/gadobot/internal/biz/usecase"
	"github.com/gadobot/gadobot/internal/conf"
)

// Incoming is one inbound message, already detached from the transport.
type Incoming struct {
	ChatID       int64
	ChatTitle    string
	ChatUsername string
	MessageID    int
	SenderID     int64
	SenderLang   string // language code reported by the platform
	Text         string
	Document     *DocumentRef
	ReplyTo      *ReplyInfo
}

// DocumentRef points at a document attached to a message.
type DocumentRef struct {
	FileID   string
	FileName string
}

// ReplyInfo describes the message this one replies to.
type ReplyInfo struct {
	SenderID int64
	Media    *domain.FileRef
	Text     string // text or caption of the replied-to message
}

// CommandService executes bot commands and routes plain text through
// the trigger matcher.
type CommandService struct {
	rules     *usecase.RulesUsecase
	matcher   *usecase.MatcherUsecase
	mod       *usecase.ModerationUsecase
	backup    *usecase.BackupUsecase
	responder *usecase.ResponderUsecase
	chats     repo.ChatRepo
	transport repo.Transport
	locales   *conf.LocalesConfig
	admins    map[int64]bool
	version   string
}

// NewCommandService creates a new command service.
func NewCommandService(
	rules *usecase.RulesUsecase,
	matcher *usecase.MatcherUsecase,
	mod *usecase.ModerationUsecase,
	backup *usecase.BackupUsecase,
	responder *usecase.ResponderUsecase,
	chats repo.ChatRepo,
	transport repo.Transport,
	locales *conf.LocalesConfig,
	admins map[int64]bool,
	version string,
) *CommandService {
	return &CommandService{
		rules:     rules,
		matcher:   matcher,
		mod:       mod,
		backup:    backup,
		responder: responder,
		chats:     chats,
		transport: transport,
		locales:   locales,
		admins:    admins,
		version:   version,
	}
}

// guard is a precondition checked before a command body runs. On
// failure it returns the locale key of the denial message.
type guard func(ctx context.Context, msg *Incoming) (ok bool, denyKey string)

// require runs the guards in order and replies with the first denial.
func (s *CommandService) require(ctx context.Context, msg *Incoming, lang string, guards ...guard) bool {
	for _, g := range guards {
		if ok, key := g(ctx, msg); !ok {
			s.reply(ctx, msg, s.locales.Get(lang, key))
			return false
		}
	}
	return true
}

// canChangeInfo requires the sender to be the creator or an admin with
// the change-info right. When the bot itself is not an admin the check
// passes, matching the relaxed behavior for casual group setups.
func (s *CommandService) canChangeInfo() guard {
	return func(ctx context.Context, msg *Incoming) (bool, string) {
		if s.memberHasRight(ctx, msg.ChatID, msg.SenderID, true, func(m *domain.MemberInfo) bool {
			return m.CanChangeInfo
		}) {
			return true, ""
		}
		return false, "no_perm_profile"
	}
}

// canRestrict requires the sender to be the creator or an admin with
// the restrict-members right.
func (s *CommandService) canRestrict() guard {
	return func(ctx context.Context, msg *Incoming) (bool, string) {
		if s.memberHasRight(ctx, msg.ChatID, msg.SenderID, false, func(m *domain.MemberInfo) bool {
			return m.CanRestrictMembers
		}) {
			return true, ""
		}
		return false, "no_restmem_profile"
	}
}

// botCanRestrict requires the bot itself to hold the restrict-members
// right in the chat.
func (s *CommandService) botCanRestrict() guard {
	return func(ctx context.Context, msg *Incoming) (bool, string) {
		me, err := s.transport.GetMember(ctx, msg.ChatID, s.transport.BotID())
		if err != nil || !me.CanRestrictMembers {
			return false, "bot_no_perm_restrict_members"
		}
		return true, ""
	}
}

func (s *CommandService) memberHasRight(ctx context.Context, chatID, userID int64, relaxedWhenBotNotAdmin bool, right func(*domain.MemberInfo) bool) bool {
	if relaxedWhenBotNotAdmin {
		me, err := s.transport.GetMember(ctx, chatID, s.transport.BotID())
		if err != nil || me.Status != domain.MemberStatusAdministrator {
			return true
		}
	}
	m, err := s.transport.GetMember(ctx, chatID, userID)
	if err != nil {
		log.Printf("[service] checking admin status for %d in %d: %v", userID, chatID, err)
		return false
	}
	switch m.Status {
	case domain.MemberStatusCreator:
		return true
	case domain.MemberStatusAdministrator:
		return right(m)
	}
	return false
}

// lang resolves the sender's language, registering the user with the
// platform-reported code on first sight.
func (s *CommandService) lang(ctx context.Context, msg *Incoming) string {
	code, err := s.chats.GetUserLang(ctx, msg.SenderID)
	if err != nil || code == "" {
		code = externalLangCode(msg.SenderLang)
		_ = s.chats.RegisterUser(ctx, msg.SenderID, code)
	}
	return localeKey(code)
}

// supportedLangs are the codes a user may pick with /lang.
var supportedLangs = map[string]bool{
	"ru": true, "en": true, "uk": true, "kk": true, "de": true, "fr": true,
}

func externalLangCode(platformCode string) string {
	if supportedLangs[platformCode] {
		return platformCode
	}
	return "en"
}

// localeKey maps an external code to the locale table key.
func localeKey(code string) string {
	switch code {
	case "ru", "uk", "kk", "de", "fr":
		return code
	}
	return "eng"
}

func (s *CommandService) reply(ctx context.Context, msg *Incoming, text string) {
	if err := s.transport.ReplyText(ctx, msg.ChatID, msg.MessageID, text); err != nil {
		log.Printf("[service] reply to chat %d failed: %v", msg.ChatID, err)
	}
}

// resolveTarget turns parsed command args into a concrete user id,
// replying with the appropriate error when that is impossible.
func (s *CommandService) resolveTarget(ctx context.Context, msg *Incoming, lang string, args domain.CommandArgs) (int64, bool) {
	if !args.HasTarget() {
		s.reply(ctx, msg, s.locales.Get(lang, "target_missing"))
		return 0, false
	}
	if !args.HasUserID {
		// Bare @mentions cannot be resolved to an id via the bot API.
		s.reply(ctx, msg, s.locales.Format(lang, "mention_unreadable", map[string]string{"user_id": args.Mention}))
		return 0, false
	}
	return args.UserID, true
}

// refuseSelf guards actions aimed at the bot's own account.
func (s *CommandService) refuseSelf(ctx context.Context, msg *Incoming, lang string, target int64) bool {
	if target == s.transport.BotID() {
		s.reply(ctx, msg, s.locales.Get(lang, "cant_target_self"))
		return true
	}
	return false
}

func itoa(v int64) string { return fmt.Sprintf("%d", v) }
