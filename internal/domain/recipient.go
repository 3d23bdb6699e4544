package domain

import "strings"

// Recipient is a named address in a sender, to, cc or bcc role.
type Recipient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Label returns the name, or the address when the name is empty.
func (r Recipient) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Address
}

// String formats the recipient as an RFC 5322 style address.
func (r Recipient) String() string {
	if r.Name == "" {
		return r.Address
	}
	return r.Name + " <" + r.Address + ">"
}

// RecipientsLabel joins the label of each recipient with ", ", keeping order.
func RecipientsLabel(recipients []Recipient) string {
	labels := make([]string, len(recipients))
	for i, r := range recipients {
		labels[i] = r.Label()
	}
	return strings.Join(labels, ", ")
}
