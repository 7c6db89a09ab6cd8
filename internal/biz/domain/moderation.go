package domain

// DefaultWarnLimit applies when a chat has no explicit warn limit.
const DefaultWarnLimit = 3

// WarnRecord is the warn counter for one user in one chat. An absent
// record is equivalent to a count of zero.
type WarnRecord struct {
	ChatID int64
	UserID int64
	Count  int
}

// Chat is a registered chat.
type Chat struct {
	ID       int64
	Name     string
	Username string
	Lang     string
}

// MemberStatus is the role of a chat member as reported by the transport.
type MemberStatus string

const (
	MemberStatusCreator       MemberStatus = "creator"
	MemberStatusAdministrator MemberStatus = "administrator"
	MemberStatusMember        MemberStatus = "member"
)

// MemberInfo describes a chat member's role and relevant admin rights.
type MemberInfo struct {
	Status             MemberStatus
	CanRestrictMembers bool
	CanChangeInfo      bool
}

// IsAdmin reports whether the member moderates the chat at all.
func (m *MemberInfo) IsAdmin() bool {
	return m.Status == MemberStatusCreator || m.Status == MemberStatusAdministrator
}
