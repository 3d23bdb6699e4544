package domain

// Label is a distinct label name seen on cached emails.
type Label struct {
	Name  string
	Count int
}

const (
	LabelInbox   = "INBOX"
	LabelStarred = "STARRED"
	LabelSent    = "SENT"
	LabelDraft   = "DRAFT"
	LabelTrash   = "TRASH"
	LabelSpam    = "SPAM"
)
