package app

import (
	"github.com/lu-zhengda/workapi/internal/config"
	"github.com/lu-zhengda/workapi/internal/domain"
)

// UrgencyRules marks emails as urgent when the sender matches one of the
// contacts or a body segment matches one of the keywords. Matching is
// literal equality.
type UrgencyRules struct {
	Contacts []string
	Keywords []string
}

// NewUrgencyRules builds rules from the [urgency] config section.
func NewUrgencyRules(cfg config.UrgencyConfig) UrgencyRules {
	return UrgencyRules{Contacts: cfg.Contacts, Keywords: cfg.Keywords}
}

// Empty reports whether no rule is configured.
func (r UrgencyRules) Empty() bool {
	return len(r.Contacts) == 0 && len(r.Keywords) == 0
}

// Apply sets e.Urgent from the rules, clearing it when nothing matches.
func (r UrgencyRules) Apply(e *domain.Email) {
	e.Urgent = r.matches(e)
}

// ApplyAll applies the rules to every email in place.
func (r UrgencyRules) ApplyAll(emails []domain.Email) {
	for i := range emails {
		r.Apply(&emails[i])
	}
}

func (r UrgencyRules) matches(m domain.Matcher) bool {
	for _, c := range r.Contacts {
		if m.MatchesContact(c) {
			return true
		}
	}
	for _, k := range r.Keywords {
		if m.MatchesKeyword(k) {
			return true
		}
	}
	return false
}
