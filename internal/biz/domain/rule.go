package domain

import "strings"

// FileType classifies the media attached to a rule.
type FileType string

const (
	FileTypePhoto     FileType = "photo"
	FileTypeVideo     FileType = "video"
	FileTypeDocument  FileType = "document"
	FileTypeAnimation FileType = "animation"
)

// ParseFileType maps a raw tag to a FileType.
func ParseFileType(s string) (FileType, bool) {
	switch FileType(s) {
	case FileTypePhoto, FileTypeVideo, FileTypeDocument, FileTypeAnimation:
		return FileType(s), true
	}
	return "", false
}

func (t FileType) String() string { return string(t) }

// FileRef references previously uploaded media.
type FileRef struct {
	ID   string
	Type FileType
}

// MediaResponsePlaceholder marks a rule whose response text is only a
// placeholder; it is not sent as a caption.
const MediaResponsePlaceholder = "Media response"

// Rule is one trigger→response binding scoped to a chat. Rules are
// matched in insertion order (ascending ID).
type Rule struct {
	ID       int64
	ChatID   int64
	Trigger  string
	Response string
	File     *FileRef // nil for text-only rules
}

// IsRegexTrigger reports whether the trigger uses the r"pattern" form.
func (r *Rule) IsRegexTrigger() bool {
	return strings.HasPrefix(r.Trigger, `r"`) && strings.HasSuffix(r.Trigger, `"`)
}

// RegexPattern returns the pattern inside an r"..." trigger.
func (r *Rule) RegexPattern() string {
	if len(r.Trigger) < 3 {
		return ""
	}
	return r.Trigger[2 : len(r.Trigger)-1]
}

// HasCaption reports whether a media rule carries a real caption.
func (r *Rule) HasCaption() bool {
	return r.Response != "" && r.Response != MediaResponsePlaceholder
}
