package usecase

import (
	"context"
	"time"

	"github.com/gadobot/gadobot/internal/biz/domain"
)

type mockRuleRepo struct {
	rules      []domain.Rule
	addErr     error
	listErr    error
	replaceErr error

	replaced     [][]domain.Rule
	removeAllHit int
}

func (m *mockRuleRepo) Add(ctx context.Context, rule *domain.Rule) error {
	if m.addErr != nil {
		return m.addErr
	}
	rule.ID = int64(len(m.rules) + 1)
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockRuleRepo) ListByChat(ctx context.Context, chatID int64) ([]domain.Rule, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Rule
	for _, r := range m.rules {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRuleRepo) Remove(ctx context.Context, chatID int64, trigger string) (bool, error) {
	for i, r := range m.rules {
		if r.ChatID == chatID && r.Trigger == trigger {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRuleRepo) RemoveAll(ctx context.Context, chatID int64) (int64, error) {
	m.removeAllHit++
	var kept []domain.Rule
	var n int64
	for _, r := range m.rules {
		if r.ChatID == chatID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rules = kept
	return n, nil
}

func (m *mockRuleRepo) ReplaceAll(ctx context.Context, chatID int64, rules []domain.Rule) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = append(m.replaced, rules)
	var kept []domain.Rule
	for _, r := range m.rules {
		if r.ChatID != chatID {
			kept = append(kept, r)
		}
	}
	m.rules = append(kept, rules...)
	return nil
}

type mockModerationRepo struct {
	warns     map[int64]int
	limit     int
	limitSet  bool
	blacklist map[int64]bool
}

func newMockModerationRepo() *mockModerationRepo {
	return &mockModerationRepo{warns: make(map[int64]int), blacklist: make(map[int64]bool)}
}

func (m *mockModerationRepo) AddWarn(ctx context.Context, chatID, userID int64) (int, error) {
	m.warns[userID]++
	return m.warns[userID], nil
}

func (m *mockModerationRepo) RemoveWarn(ctx context.Context, chatID, userID int64) (int, error) {
	if m.warns[userID] > 0 {
		m.warns[userID]--
	}
	return m.warns[userID], nil
}

func (m *mockModerationRepo) ResetWarns(ctx context.Context, chatID, userID int64) error {
	delete(m.warns, userID)
	return nil
}

func (m *mockModerationRepo) GetWarns(ctx context.Context, chatID, userID int64) (int, error) {
	return m.warns[userID], nil
}

func (m *mockModerationRepo) SetWarnLimit(ctx context.Context, chatID int64, limit int) error {
	m.limit = limit
	m.limitSet = true
	return nil
}

func (m *mockModerationRepo) GetWarnLimit(ctx context.Context, chatID int64) (int, error) {
	if !m.limitSet {
		return domain.DefaultWarnLimit, nil
	}
	return m.limit, nil
}

func (m *mockModerationRepo) AddBlacklist(ctx context.Context, chatID, userID int64) error {
	m.blacklist[userID] = true
	return nil
}

func (m *mockModerationRepo) RemoveBlacklist(ctx context.Context, chatID, userID int64) (bool, error) {
	if !m.blacklist[userID] {
		return false, nil
	}
	delete(m.blacklist, userID)
	return true, nil
}

func (m *mockModerationRepo) GetBlacklist(ctx context.Context, chatID int64) ([]int64, error) {
	var out []int64
	for id := range m.blacklist {
		out = append(out, id)
	}
	return out, nil
}

type sentText struct {
	ChatID  int64
	ReplyTo int
	Text    string
}

type sentMedia struct {
	ChatID  int64
	ReplyTo int
	File    domain.FileRef
	Caption string
}

type banCall struct {
	ChatID int64
	UserID int64
	Until  time.Time
}

type mockTransport struct {
	texts  []sentText
	medias []sentMedia
	bans   []banCall
	unbans []int64

	banErr error
}

func (m *mockTransport) SendText(ctx context.Context, chatID int64, text string) error {
	m.texts = append(m.texts, sentText{ChatID: chatID, Text: text})
	return nil
}

func (m *mockTransport) ReplyText(ctx context.Context, chatID int64, replyTo int, text string) error {
	m.texts = append(m.texts, sentText{ChatID: chatID, ReplyTo: replyTo, Text: text})
	return nil
}

func (m *mockTransport) ReplyMedia(ctx context.Context, chatID int64, replyTo int, file domain.FileRef, caption string) error {
	m.medias = append(m.medias, sentMedia{ChatID: chatID, ReplyTo: replyTo, File: file, Caption: caption})
	return nil
}

func (m *mockTransport) SendDocument(ctx context.Context, chatID int64, filename string, content []byte, caption string) error {
	return nil
}

func (m *mockTransport) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	return nil, nil
}

func (m *mockTransport) BanMember(ctx context.Context, chatID, userID int64, until time.Time) error {
	if m.banErr != nil {
		return m.banErr
	}
	m.bans = append(m.bans, banCall{ChatID: chatID, UserID: userID, Until: until})
	return nil
}

func (m *mockTransport) UnbanMember(ctx context.Context, chatID, userID int64) error {
	m.unbans = append(m.unbans, userID)
	return nil
}

func (m *mockTransport) RestrictMember(ctx context.Context, chatID, userID int64, canSend bool, until time.Time) error {
	return nil
}

func (m *mockTransport) GetMember(ctx context.Context, chatID, userID int64) (*domain.MemberInfo, error) {
	return &domain.MemberInfo{Status: domain.MemberStatusMember}, nil
}

func (m *mockTransport) MemberCount(ctx context.Context, chatID int64) (int, error) {
	return 0, nil
}

func (m *mockTransport) BotID() int64 { return 999 }
