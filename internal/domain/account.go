package domain

import "time"

// Provider names stored on Account.Provider.
const (
	ProviderWorkAPI = "workapi"
	ProviderGmail   = "gmail"
)

type Account struct {
	ID          string
	Email       string
	Provider    string
	DisplayName string
	CreatedAt   time.Time
}
