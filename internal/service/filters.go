package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/usecase"
)

// Filter handles /filter: add a text rule, or a media rule when used
// as a reply to media.
func (s *CommandService) Filter(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canChangeInfo()) {
		return
	}

	if msg.ReplyTo != nil && msg.ReplyTo.Media != nil {
		s.addMediaFilter(ctx, msg, lang)
		return
	}

	trigger, response, ok := usecase.ParseFilterCommand(msg.Text)
	if !ok {
		s.reply(ctx, msg, s.locales.Get(lang, "filter_usage_text"))
		return
	}

	if err := s.rules.Add(ctx, msg.ChatID, trigger, response, nil); err != nil {
		if errors.Is(err, usecase.ErrDuplicateTrigger) {
			s.reply(ctx, msg, s.locales.Get(lang, "already_exists"))
		} else {
			log.Printf("[service] add filter in chat %d: %v", msg.ChatID, err)
			s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		}
		return
	}

	filterType := s.locales.Get(lang, "text")
	display := trigger
	r := domain.Rule{Trigger: trigger}
	if r.IsRegexTrigger() {
		filterType = s.locales.Get(lang, "regex")
		display = r.RegexPattern()
	}
	s.reply(ctx, msg, s.locales.Format(lang, "filter_added_text", map[string]string{
		"filter_type": filterType,
		"trigger":     display,
	}))
}

func (s *CommandService) addMediaFilter(ctx context.Context, msg *Incoming, lang string) {
	parts := strings.SplitN(msg.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		s.reply(ctx, msg, s.locales.Get(lang, "filter_usage_media"))
		return
	}
	trigger := strings.TrimSpace(parts[1])

	response := msg.ReplyTo.Text
	if response == "" {
		response = domain.MediaResponsePlaceholder
	}

	if err := s.rules.Add(ctx, msg.ChatID, trigger, response, msg.ReplyTo.Media); err != nil {
		if errors.Is(err, usecase.ErrDuplicateTrigger) {
			s.reply(ctx, msg, s.locales.Get(lang, "already_exists"))
		} else {
			log.Printf("[service] add media filter in chat %d: %v", msg.ChatID, err)
			s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		}
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "filter_added_media", map[string]string{"trigger": trigger}))
}

// Filters handles /filters: list the chat's triggers.
func (s *CommandService) Filters(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	rules, err := s.rules.List(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] list filters in chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if len(rules) == 0 {
		s.reply(ctx, msg, s.locales.Get(lang, "not_exists_filter_all"))
		return
	}

	triggers := make([]string, 0, len(rules))
	for i := range rules {
		triggers = append(triggers, rules[i].Trigger)
	}
	sort.Strings(triggers)

	s.reply(ctx, msg, s.locales.Format(lang, "filters_list", map[string]string{
		"filters_text": strings.Join(triggers, "\n"),
	}))
}

// RemoveFilter handles /remove_filter <trigger>.
func (s *CommandService) RemoveFilter(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canChangeInfo()) {
		return
	}

	parts := strings.SplitN(msg.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		s.reply(ctx, msg, s.locales.Get(lang, "remove_filter_usage"))
		return
	}
	trigger := strings.TrimSpace(parts[1])

	removed, err := s.rules.Remove(ctx, msg.ChatID, trigger)
	if err != nil {
		log.Printf("[service] remove filter in chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if !removed {
		s.reply(ctx, msg, s.locales.Get(lang, "remove_filter_not_found"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "remove_filter_success", map[string]string{"trigger": trigger}))
}

// RemoveAllFilters handles /remove_all_filters.
func (s *CommandService) RemoveAllFilters(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canChangeInfo()) {
		return
	}

	count, err := s.rules.RemoveAll(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] remove all filters in chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if count == 0 {
		s.reply(ctx, msg, s.locales.Get(lang, "not_exists_filter_all"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "remove_all_filters_success", map[string]string{
		"count": fmt.Sprintf("%d", count),
	}))
}

// Export handles /export: send the chat's rules as a .gbtp document.
func (s *CommandService) Export(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	doc, err := s.backup.Export(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] export chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}

	filename := fmt.Sprintf("gadobot_backup_%d_%d.gbtp", msg.ChatID, time.Now().Unix())
	if err := s.transport.SendDocument(ctx, msg.ChatID, filename, doc, s.locales.Get(lang, "export_caption")); err != nil {
		log.Printf("[service] send export for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
	}
}

// Import handles /import: replace the chat's rules from an attached
// .gbtp document. Owner only. Once parsing has started, failure leaves
// the chat's rule set empty rather than partially imported.
func (s *CommandService) Import(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)

	member, err := s.transport.GetMember(ctx, msg.ChatID, msg.SenderID)
	if err != nil || member.Status != domain.MemberStatusCreator {
		s.reply(ctx, msg, s.locales.Get(lang, "import_no_rights"))
		return
	}

	if msg.Document == nil {
		s.reply(ctx, msg, s.locales.Get(lang, "import_no_file"))
		return
	}
	if !strings.HasSuffix(msg.Document.FileName, ".gbtp") {
		s.reply(ctx, msg, s.locales.Get(lang, "import_bad_ext"))
		return
	}

	content, err := s.transport.DownloadDocument(ctx, msg.Document.FileID)
	if err != nil {
		log.Printf("[service] download import file for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}

	if _, err := s.backup.Import(ctx, msg.ChatID, content); err != nil {
		if errors.Is(err, usecase.ErrUnsupportedFormat) {
			s.reply(ctx, msg, s.locales.Get(lang, "import_unsupported"))
			return
		}
		log.Printf("[service] import for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "import_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Get(lang, "import_success"))
}

// HandleText routes a plain group message through the trigger matcher.
func (s *CommandService) HandleText(ctx context.Context, msg *Incoming) {
	if err := s.chats.RegisterChat(ctx, &domain.Chat{
		ID:       msg.ChatID,
		Name:     msg.ChatTitle,
		Username: msg.ChatUsername,
	}); err != nil {
		log.Printf("[service] register chat %d: %v", msg.ChatID, err)
	}

	rule, err := s.matcher.Match(ctx, msg.ChatID, msg.Text)
	if err != nil {
		log.Printf("[service] match in chat %d: %v", msg.ChatID, err)
		return
	}
	if rule == nil {
		return
	}
	if err := s.responder.Respond(ctx, msg.ChatID, msg.MessageID, msg.SenderID, rule); err != nil {
		log.Printf("[service] respond in chat %d: %v", msg.ChatID, err)
	}
}
