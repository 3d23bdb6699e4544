package domain

import (
	"encoding/json"
	"strings"
)

// Attendee is a participant on a calendar event.
type Attendee struct {
	ProfileID        string `json:"profile_id"`
	EmailAddress     string `json:"email_address"`
	DisplayName      string `json:"display_name"`
	Organizer        bool   `json:"organizer"`
	Self             bool   `json:"self"`
	Resource         bool   `json:"resource"`
	Optional         bool   `json:"optional"`
	ResponseStatus   string `json:"response_status"`
	Comment          string `json:"comment"`
	AdditionalGuests int    `json:"additionalGuests"`
}

// NewAttendee returns an Attendee carrying the wire defaults: the API treats
// an attendee without explicit flags as the organizer and as self.
func NewAttendee() Attendee {
	return Attendee{Organizer: true, Self: true}
}

// UnmarshalJSON applies the NewAttendee defaults before decoding so keys
// missing from the payload keep them.
func (a *Attendee) UnmarshalJSON(data []byte) error {
	type plain Attendee
	v := plain(NewAttendee())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Attendee(v)
	return nil
}

// Label returns the display name (or email address) followed by the active
// flags in parentheses, e.g. "Jane Doe (organizer)".
func (a Attendee) Label() string {
	name := a.DisplayName
	if name == "" {
		name = a.EmailAddress
	}

	flags := a.flagNames()
	if len(flags) == 0 {
		return name
	}
	return name + " (" + strings.Join(flags, ", ") + ")"
}

// flagNames lists the flags shown in Label. Only organizer is surfaced today;
// append further names here to have them rendered.
func (a Attendee) flagNames() []string {
	var flags []string
	if a.Organizer {
		flags = append(flags, "organizer")
	}
	return flags
}
