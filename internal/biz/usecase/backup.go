package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// GBTP (GADOBOT Transmit Protocol) v0.0.1 backup document layout:
//
//	GBTP001:GADOBOT Transmit Protocol v0.0.1
//	BEGIN
//	~<trigger>;<response>;<file_id|None>;<file_type|None>
//	...
//
// The format is delimiter based with no escaping: triggers or responses
// containing literal '~' or ';' will not round-trip. Known limitation,
// kept for compatibility with existing exported files.
const (
	gbtpHeader = "GBTP001"
	gbtpBanner = "GBTP001:GADOBOT Transmit Protocol v0.0.1"
	gbtpNull   = "None"
)

// ErrUnsupportedFormat is returned for documents without the GBTP
// header. Existing rules are left untouched in that case.
var ErrUnsupportedFormat = errors.New("unsupported backup format")

// ErrInvalidFormat is returned for documents that carry the header but
// are structurally broken. The chat's rule set has been wiped by then.
var ErrInvalidFormat = errors.New("invalid backup document")

// BackupUsecase serializes and restores a chat's rule set.
type BackupUsecase struct {
	rules repo.RuleRepo
}

// NewBackupUsecase creates a new backup usecase.
func NewBackupUsecase(rules repo.RuleRepo) *BackupUsecase {
	return &BackupUsecase{rules: rules}
}

// Export serializes the chat's rules into a GBTP document.
func (uc *BackupUsecase) Export(ctx context.Context, chatID int64) ([]byte, error) {
	rules, err := uc.rules.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(gbtpBanner)
	b.WriteString("\nBEGIN\n")
	for i := range rules {
		r := &rules[i]
		fileID, fileType := gbtpNull, gbtpNull
		if r.File != nil {
			fileID = r.File.ID
			fileType = r.File.Type.String()
		}
		fmt.Fprintf(&b, "~%s;%s;%s;%s\n", r.Trigger, r.Response, fileID, fileType)
	}
	return []byte(b.String()), nil
}

// Import parses a GBTP document and replaces the chat's entire rule set
// with its records, preserving record order as the new match priority.
// Records with a field count other than four are silently skipped.
//
// Failure semantics are deliberately destructive: once the header check
// has passed, any parse or storage error leaves the chat with an empty
// rule set rather than a partial import. Returns the number of rules
// imported.
func (uc *BackupUsecase) Import(ctx context.Context, chatID int64, content []byte) (int, error) {
	doc := string(content)
	if !strings.HasPrefix(doc, gbtpHeader) {
		return 0, ErrUnsupportedFormat
	}

	parts := strings.SplitN(doc, "BEGIN", 2)
	if len(parts) < 2 {
		return 0, uc.wipe(ctx, chatID, ErrInvalidFormat)
	}

	var rules []domain.Rule
	for _, frag := range strings.Split(parts[1], "~") {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		fields := strings.Split(frag, ";")
		if len(fields) != 4 {
			continue
		}

		rule := domain.Rule{
			ChatID:   chatID,
			Trigger:  nullable(fields[0]),
			Response: nullable(fields[1]),
		}
		if fields[2] != gbtpNull && fields[3] != gbtpNull {
			ft, ok := domain.ParseFileType(fields[3])
			if !ok {
				return 0, uc.wipe(ctx, chatID, fmt.Errorf("%w: unknown file type %q", ErrInvalidFormat, fields[3]))
			}
			rule.File = &domain.FileRef{ID: fields[2], Type: ft}
		}
		rules = append(rules, rule)
	}

	if err := uc.rules.ReplaceAll(ctx, chatID, rules); err != nil {
		return 0, uc.wipe(ctx, chatID, err)
	}
	return len(rules), nil
}

// wipe empties the chat's rule set after a failed import and passes the
// original error through. "Empty but consistent" beats "partially imported".
func (uc *BackupUsecase) wipe(ctx context.Context, chatID int64, cause error) error {
	if _, err := uc.rules.RemoveAll(ctx, chatID); err != nil {
		return fmt.Errorf("wiping rules after failed import: %v (import error: %w)", err, cause)
	}
	return cause
}

func nullable(s string) string {
	if s == gbtpNull {
		return ""
	}
	return s
}
