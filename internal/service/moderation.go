package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

// Warn handles /warn: add a warn, banning when the limit is reached.
func (s *CommandService) Warn(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok || s.refuseSelf(ctx, msg, lang, target) {
		return
	}

	res, err := s.mod.Warn(ctx, msg.ChatID, target)
	if err != nil {
		log.Printf("[service] warn %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if res.Escalated {
		s.reply(ctx, msg, s.locales.Format(lang, "warn_ban", map[string]string{"user_id": itoa(target)}))
		return
	}
	s.reply(ctx, msg, strings.TrimSpace(s.locales.Format(lang, "warned", map[string]string{
		"user_id":    itoa(target),
		"count":      strconv.Itoa(res.Count),
		"warn_limit": strconv.Itoa(res.Limit),
		"reason":     args.Reason,
	})))
}

// Unwarn handles /unwarn.
func (s *CommandService) Unwarn(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok {
		return
	}

	if _, err := s.mod.Unwarn(ctx, msg.ChatID, target); err != nil {
		log.Printf("[service] unwarn %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "unwarned", map[string]string{"user_id": itoa(target)}))
}

// LimitWarn handles /limitwarn: show the chat's warn limit, or set it
// when a number is given.
func (s *CommandService) LimitWarn(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)

	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		limit, err := s.mod.Limit(ctx, msg.ChatID)
		if err != nil {
			log.Printf("[service] get warn limit for chat %d: %v", msg.ChatID, err)
			s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
			return
		}
		s.reply(ctx, msg, s.locales.Format(lang, "warn_limit_current", map[string]string{
			"warn_limit": strconv.Itoa(limit),
		}))
		return
	}

	if !s.require(ctx, msg, lang, s.canRestrict()) {
		return
	}
	limit, err := strconv.Atoi(parts[1])
	if err != nil || limit < 0 {
		s.reply(ctx, msg, s.locales.Get(lang, "warn_limit_invalid"))
		return
	}
	if err := s.mod.SetLimit(ctx, msg.ChatID, limit); err != nil {
		log.Printf("[service] set warn limit for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "warn_limit_set", map[string]string{
		"warn_limit": strconv.Itoa(limit),
	}))
}

// Ban handles /ban [target] [duration] [reason].
func (s *CommandService) Ban(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict(), s.botCanRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok || s.refuseSelf(ctx, msg, lang, target) {
		return
	}

	until := time.Time{}
	if args.HasDuration {
		until = time.Now().Add(args.Duration)
	}
	if err := s.transport.BanMember(ctx, msg.ChatID, target, until); err != nil {
		log.Printf("[service] ban %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "ban_failed"))
		return
	}
	s.reply(ctx, msg, strings.TrimSpace(s.locales.Format(lang, "banned", map[string]string{
		"user_id": itoa(target),
		"timer":   s.timerText(lang, args),
		"reason":  args.Reason,
	})))
}

// Unban handles /unban.
func (s *CommandService) Unban(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict(), s.botCanRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok {
		return
	}

	if err := s.transport.UnbanMember(ctx, msg.ChatID, target); err != nil {
		log.Printf("[service] unban %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "unban_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "unbanned", map[string]string{"user_id": itoa(target)}))
}

// Mute handles /mute [target] [duration] [reason].
func (s *CommandService) Mute(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict(), s.botCanRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok || s.refuseSelf(ctx, msg, lang, target) {
		return
	}

	until := time.Time{}
	if args.HasDuration {
		until = time.Now().Add(args.Duration)
	}
	if err := s.transport.RestrictMember(ctx, msg.ChatID, target, false, until); err != nil {
		log.Printf("[service] mute %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "mute_failed"))
		return
	}
	s.reply(ctx, msg, strings.TrimSpace(s.locales.Format(lang, "muted", map[string]string{
		"user_id": itoa(target),
		"timer":   s.timerText(lang, args),
		"reason":  args.Reason,
	})))
}

// Unmute handles /unmute.
func (s *CommandService) Unmute(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict(), s.botCanRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok {
		return
	}

	if err := s.transport.RestrictMember(ctx, msg.ChatID, target, true, time.Time{}); err != nil {
		log.Printf("[service] unmute %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "unmute_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "unmuted", map[string]string{"user_id": itoa(target)}))
}

// Kick handles /kick: ban-then-unban so the user can rejoin.
func (s *CommandService) Kick(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.botCanRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok || s.refuseSelf(ctx, msg, lang, target) {
		return
	}
	s.kick(ctx, msg, lang, target, args.Reason)
}

// KickMe handles /kickme: the sender removes themselves; admins are
// refused.
func (s *CommandService) KickMe(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.botCanRestrict()) {
		return
	}
	m, err := s.transport.GetMember(ctx, msg.ChatID, msg.SenderID)
	if err == nil && m.IsAdmin() {
		s.reply(ctx, msg, s.locales.Get(lang, "kickme_admin"))
		return
	}
	s.kick(ctx, msg, lang, msg.SenderID, "")
}

func (s *CommandService) kick(ctx context.Context, msg *Incoming, lang string, target int64, reason string) {
	if err := s.transport.BanMember(ctx, msg.ChatID, target, time.Time{}); err != nil {
		log.Printf("[service] kick %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "kick_failed"))
		return
	}
	// Best effort: a failed unban leaves the user banned instead of kicked.
	if err := s.transport.UnbanMember(ctx, msg.ChatID, target); err != nil {
		log.Printf("[service] unban after kick for %d in chat %d: %v", target, msg.ChatID, err)
	}
	s.reply(ctx, msg, strings.TrimSpace(s.locales.Format(lang, "kicked", map[string]string{
		"user_id": itoa(target),
		"reason":  reason,
	})))
}

// CheckHistory handles /checkhistory: warn count and blacklist status
// for a user.
func (s *CommandService) CheckHistory(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	args := s.parseArgs(msg)
	target := msg.SenderID
	if args.HasTarget() {
		var ok bool
		if target, ok = s.resolveTarget(ctx, msg, lang, args); !ok {
			return
		}
	}

	warns, err := s.mod.Warns(ctx, msg.ChatID, target)
	if err != nil {
		log.Printf("[service] warns for %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	limit, err := s.mod.Limit(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] warn limit for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	listed, err := s.mod.Blacklist(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] blacklist for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	blacklisted := "no"
	for _, id := range listed {
		if id == target {
			blacklisted = "yes"
			break
		}
	}

	s.reply(ctx, msg, s.locales.Format(lang, "history", map[string]string{
		"user_id":     itoa(target),
		"warns":       strconv.Itoa(warns),
		"warn_limit":  strconv.Itoa(limit),
		"blacklisted": blacklisted,
	}))
}

// Blacklist handles /blacklist: list the chat's blacklisted ids.
func (s *CommandService) Blacklist(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	ids, err := s.mod.Blacklist(ctx, msg.ChatID)
	if err != nil {
		log.Printf("[service] blacklist for chat %d: %v", msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if len(ids) == 0 {
		s.reply(ctx, msg, s.locales.Get(lang, "blacklist_empty"))
		return
	}
	entries := make([]string, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, itoa(id))
	}
	s.reply(ctx, msg, s.locales.Format(lang, "blacklist_list_header", map[string]string{
		"entries": strings.Join(entries, "\n"),
	}))
}

// AddBlacklist handles /addblacklist.
func (s *CommandService) AddBlacklist(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok || s.refuseSelf(ctx, msg, lang, target) {
		return
	}

	if err := s.mod.AddBlacklist(ctx, msg.ChatID, target); err != nil {
		log.Printf("[service] add blacklist %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "blacklist_added", map[string]string{"user_id": itoa(target)}))
}

// RemoveBlacklist handles /removeblacklist.
func (s *CommandService) RemoveBlacklist(ctx context.Context, msg *Incoming) {
	lang := s.lang(ctx, msg)
	if !s.require(ctx, msg, lang, s.canRestrict()) {
		return
	}
	args := s.parseArgs(msg)
	target, ok := s.resolveTarget(ctx, msg, lang, args)
	if !ok {
		return
	}

	removed, err := s.mod.RemoveBlacklist(ctx, msg.ChatID, target)
	if err != nil {
		log.Printf("[service] remove blacklist %d in chat %d: %v", target, msg.ChatID, err)
		s.reply(ctx, msg, s.locales.Get(lang, "action_failed"))
		return
	}
	if !removed {
		s.reply(ctx, msg, s.locales.Format(lang, "blacklist_not_found", map[string]string{"user_id": itoa(target)}))
		return
	}
	s.reply(ctx, msg, s.locales.Format(lang, "blacklist_removed", map[string]string{"user_id": itoa(target)}))
}

func (s *CommandService) parseArgs(msg *Incoming) domain.CommandArgs {
	replyFrom := int64(0)
	hasReply := false
	if msg.ReplyTo != nil && msg.ReplyTo.SenderID != 0 {
		replyFrom = msg.ReplyTo.SenderID
		hasReply = true
	}
	return domain.ParseCommandArgs(msg.Text, replyFrom, hasReply)
}

func (s *CommandService) timerText(lang string, args domain.CommandArgs) string {
	if !args.HasDuration {
		return s.locales.Get(lang, "timer_forever")
	}
	return s.locales.Format(lang, "timer_for", map[string]string{
		"duration": formatDuration(args.Duration),
	})
}

// formatDuration renders a duration in the same short form commands
// accept: 7d, 12h, 30m.
func formatDuration(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
}
