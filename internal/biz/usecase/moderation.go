package usecase

import (
	"context"
	"log"
	"time"

	"github.com/gadobot/gadobot/internal/biz/repo"
)

// WarnResult reports the outcome of a warn.
type WarnResult struct {
	Count     int
	Limit     int
	Escalated bool  // the warn reached the limit and a ban was issued
	BanErr    error // set when the escalation ban failed; the counter is reset regardless
}

// ModerationUsecase drives the warn ledger and the blacklist.
type ModerationUsecase struct {
	mod       repo.ModerationRepo
	transport repo.Transport
}

// NewModerationUsecase creates a new moderation usecase.
func NewModerationUsecase(mod repo.ModerationRepo, transport repo.Transport) *ModerationUsecase {
	return &ModerationUsecase{mod: mod, transport: transport}
}

// Warn increments the user's warn counter and escalates to a ban when
// the chat's limit is reached. The counter is reset to zero after the
// ban attempt even if the ban itself failed; the ban is best effort and
// never retried.
func (uc *ModerationUsecase) Warn(ctx context.Context, chatID, userID int64) (WarnResult, error) {
	count, err := uc.mod.AddWarn(ctx, chatID, userID)
	if err != nil {
		return WarnResult{}, err
	}
	limit, err := uc.mod.GetWarnLimit(ctx, chatID)
	if err != nil {
		return WarnResult{}, err
	}

	res := WarnResult{Count: count, Limit: limit}
	// A limit of zero disables auto-ban for the chat.
	if limit < 1 || count < limit {
		return res, nil
	}

	res.Escalated = true
	res.BanErr = uc.transport.BanMember(ctx, chatID, userID, time.Time{})
	if res.BanErr != nil {
		log.Printf("[moderation] escalation ban failed for user %d in chat %d: %v", userID, chatID, res.BanErr)
	}
	if err := uc.mod.ResetWarns(ctx, chatID, userID); err != nil {
		return res, err
	}
	return res, nil
}

// Unwarn decrements the user's warn counter, flooring at zero.
func (uc *ModerationUsecase) Unwarn(ctx context.Context, chatID, userID int64) (int, error) {
	return uc.mod.RemoveWarn(ctx, chatID, userID)
}

// Warns returns the user's current warn count.
func (uc *ModerationUsecase) Warns(ctx context.Context, chatID, userID int64) (int, error) {
	return uc.mod.GetWarns(ctx, chatID, userID)
}

// SetLimit sets the chat's warn limit.
func (uc *ModerationUsecase) SetLimit(ctx context.Context, chatID int64, limit int) error {
	return uc.mod.SetWarnLimit(ctx, chatID, limit)
}

// Limit returns the chat's warn limit.
func (uc *ModerationUsecase) Limit(ctx context.Context, chatID int64) (int, error) {
	return uc.mod.GetWarnLimit(ctx, chatID)
}

// AddBlacklist flags a user in the chat's blacklist.
func (uc *ModerationUsecase) AddBlacklist(ctx context.Context, chatID, userID int64) error {
	return uc.mod.AddBlacklist(ctx, chatID, userID)
}

// RemoveBlacklist unflags a user. Returns false when the user was not listed.
func (uc *ModerationUsecase) RemoveBlacklist(ctx context.Context, chatID, userID int64) (bool, error) {
	return uc.mod.RemoveBlacklist(ctx, chatID, userID)
}

// Blacklist returns the chat's blacklisted user ids.
func (uc *ModerationUsecase) Blacklist(ctx context.Context, chatID int64) ([]int64, error) {
	return uc.mod.GetBlacklist(ctx, chatID)
}
