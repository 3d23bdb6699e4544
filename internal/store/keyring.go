package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

const keyringService = "workapi"

// ErrEmptyToken is returned when saving a credential without an access token.
var ErrEmptyToken = errors.New("empty access token")

// KeyringTokenStore keeps per-account credentials in the OS keyring. Gmail
// accounts hold a full OAuth2 token; Work API accounts hold a bearer token
// stored as an oauth2.Token with only AccessToken and TokenType set.
type KeyringTokenStore struct {
	service string
}

func NewKeyringTokenStore() *KeyringTokenStore {
	return &KeyringTokenStore{service: keyringService}
}

// SaveToken stores token under accountID, replacing any previous entry.
func (k *KeyringTokenStore) SaveToken(accountID string, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("failed to save credential for %s: %w", accountID, ErrEmptyToken)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode credential for %s: %w", accountID, err)
	}
	if err := keyring.Set(k.service, accountID, string(data)); err != nil {
		return fmt.Errorf("failed to save credential for %s: %w", accountID, err)
	}
	return nil
}

// SaveBearer stores a Work API bearer token.
func (k *KeyringTokenStore) SaveBearer(accountID, token string) error {
	return k.SaveToken(accountID, &oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// LoadToken returns the credential for accountID. A missing entry wraps
// ErrNotFound.
func (k *KeyringTokenStore) LoadToken(accountID string) (*oauth2.Token, error) {
	data, err := keyring.Get(k.service, accountID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("no credential stored for %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credential for %s: %w", accountID, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("failed to decode credential for %s: %w", accountID, err)
	}
	return &token, nil
}

// Move re-keys a credential, used once OAuth reveals the real account email.
func (k *KeyringTokenStore) Move(from, to string) error {
	if from == to {
		return nil
	}
	token, err := k.LoadToken(from)
	if err != nil {
		return err
	}
	if err := k.SaveToken(to, token); err != nil {
		return err
	}
	return k.DeleteToken(from)
}

// DeleteToken removes the credential for accountID. Deleting a missing
// entry is not an error.
func (k *KeyringTokenStore) DeleteToken(accountID string) error {
	err := keyring.Delete(k.service, accountID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete credential for %s: %w", accountID, err)
	}
	return nil
}
