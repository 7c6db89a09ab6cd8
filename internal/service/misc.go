package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Start handles /start.
func (s *CommandService) Start(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	s.reply(ctx, msg, s.locales.Format(lang, "start_message", map[string]string{
		"version": s.version,
	}))
}

// Help handles /help [-filters|-mod|-misc].
func (s *CommandService) Help(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	key := "help"
	parts := strings.Fields(msg.Text)
	if len(parts) > 1 {
		switch parts[1] {
		case "-filters":
			key = "help_filters"
		case "-mod":
			key = "help_moderation"
		case "-misc":
			key = "help_misc"
		}
	}
	s.reply(ctx, msg, s.locales.Get(lang, key))
}

// Stats handles /stats: per-chat counters.
func (s *CommandService) Stats(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	count, err := s.transport.MemberCount(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] member count for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", s.locales.Get(lang, "stats_header"), msg.ChatID)
	fmt.Fprintf(&b, "%s: %s\n", s.locales.Get(lang, "stats_name"), msg.ChatTitle)
	if msg.ChatUsername != "" {
		fmt.Fprintf(&b, "%s: @%s\n", s.locales.Get(lang, "stats_username"), msg.ChatUsername)
	}
	fmt.Fprintf(&b, "%s: %d", s.locales.Get(lang, "stats_members"), count)
	s.reply(ctx, msg, b.String())
}

// StatsGlobal handles /stats_global: bot-wide counters, admin only.
func (s *CommandService) StatsGlobal(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.admins[msg.SenderID] {
		s.reply(ctx, msg, s.locales.Get(lang, "no_perm_profile"))
		return
	}
	chats, err := s.chats.ListChats(ctx)
	if err != nil {
		log.Printf("[service] list chats: %v", err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s: %d",
		s.locales.Get(lang, "global_stats_header"),
		s.locales.Get(lang, "global_stats_chat_count"),
		len(chats))
	// -root also lists the chats themselves.
	if parts := strings.Fields(msg.Text); len(parts) > 1 && parts[1] == "-root" {
		for _, chat := range chats {
			fmt.Fprintf(&b, "\n%d: %s", chat.ID, chat.Name)
		}
	}
	s.reply(ctx, msg, b.String())
}

// Lang handles /lang <code>: set the sender's reply language.
func (s *CommandService) Lang(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)

	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		s.reply(ctx, msg, s.locales.Get(lang, "lang_help"))
		return
	}
	code := strings.ToLower(parts[1])
	if !supportedLangs[code] {
		s.reply(ctx, msg, s.locales.Format(lang, "lang_invalid", map[string]string{"lang": code}))
		return
	}
	if err := s.chats.SetUserLang(ctx, msg.SenderID, code); err != nil {
		log.Printf("[service] set lang for user %d: %v", msg.SenderID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(localeKey(code), "lang_set_success", map[string]string{"lang": code}))
}

// AdmSend handles /ADM_send <text>: broadcast to every registered chat.
// Restricted to the bot admins from the config.
func (s *CommandService) AdmSend(ctx context.Context, msg *Incoming) {
	if !s.admins[msg.SenderID] {
		return
	}
	parts := strings.SplitN(msg.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return
	}
	text := parts[1]

	chats, err := s.chats.ListChats(ctx)
	if err != nil {
		log.Printf("[service] list chats for broadcast: %v", err)
		return
	}
	sent := 0
	for _, chat := range chats {
		if err := s.transport.SendText(ctx, chat.ID, text); err != nil {
			log.Printf("[service] broadcast to chat %d: %v", chat.ID, err)
			continue
		}
		sent++
	}
	s.reply(ctx, msg, "Broadcast sent to "+strconv.Itoa(sent)+"/"+strconv.Itoa(len(chats))+" chats")
}
