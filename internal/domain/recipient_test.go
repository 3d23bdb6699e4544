package domain

import "testing"

func TestRecipient_Label(t *testing.T) {
	if got := (Recipient{Name: "John", Address: "john@example.com"}).Label(); got != "John" {
		t.Errorf("Label() = %q, want %q", got, "John")
	}
	if got := (Recipient{Address: "john@example.com"}).Label(); got != "john@example.com" {
		t.Errorf("Label() = %q, want %q", got, "john@example.com")
	}
}

func TestRecipient_String(t *testing.T) {
	tests := []struct {
		name string
		r    Recipient
		want string
	}{
		{"with name", Recipient{Name: "John", Address: "john@example.com"}, "John <john@example.com>"},
		{"address only", Recipient{Address: "john@example.com"}, "john@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipientsLabel(t *testing.T) {
	tests := []struct {
		name string
		list []Recipient
		want string
	}{
		{"nil", nil, ""},
		{"empty", []Recipient{}, ""},
		{"single", []Recipient{{Address: "a@x.com"}}, "a@x.com"},
		{"mixed in order", []Recipient{{Name: "Zed", Address: "z@x.com"}, {Address: "a@x.com"}, {Name: "Mo"}}, "Zed, a@x.com, Mo"},
		{"empty entry", []Recipient{{}, {Name: "B"}}, ", B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecipientsLabel(tt.list); got != tt.want {
				t.Errorf("RecipientsLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
