package store

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

func TestKeyringTokenStore_OAuthToken(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringTokenStore()

	tok := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}
	if err := ks.SaveToken("gmail-acc", tok); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}
	got, err := ks.LoadToken("gmail-acc")
	if err != nil {
		t.Fatalf("LoadToken() error: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Errorf("LoadToken() = %+v, want access/refresh", got)
	}
}

func TestKeyringTokenStore_Bearer(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringTokenStore()

	if err := ks.SaveBearer("acc-1", "secret"); err != nil {
		t.Fatalf("SaveBearer() error: %v", err)
	}
	got, err := ks.LoadToken("acc-1")
	if err != nil {
		t.Fatalf("LoadToken() error: %v", err)
	}
	if got.AccessToken != "secret" || got.TokenType != "Bearer" {
		t.Errorf("LoadToken() = %+v, want bearer secret", got)
	}
}

func TestKeyringTokenStore_EmptyToken(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringTokenStore()

	if err := ks.SaveBearer("acc-1", ""); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("SaveBearer(\"\") error = %v, want ErrEmptyToken", err)
	}
	if err := ks.SaveToken("acc-1", nil); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("SaveToken(nil) error = %v, want ErrEmptyToken", err)
	}
}

func TestKeyringTokenStore_NotFound(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringTokenStore()

	if _, err := ks.LoadToken("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadToken(missing) error = %v, want ErrNotFound", err)
	}
	if err := ks.DeleteToken("missing"); err != nil {
		t.Errorf("DeleteToken(missing) error = %v, want nil", err)
	}
}

func TestKeyringTokenStore_Move(t *testing.T) {
	keyring.MockInit()
	ks := NewKeyringTokenStore()

	if err := ks.SaveBearer("gmail-123", "tok"); err != nil {
		t.Fatalf("SaveBearer() error: %v", err)
	}
	if err := ks.Move("gmail-123", "me@example.com"); err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	got, err := ks.LoadToken("me@example.com")
	if err != nil {
		t.Fatalf("LoadToken(new) error: %v", err)
	}
	if got.AccessToken != "tok" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "tok")
	}
	if _, err := ks.LoadToken("gmail-123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadToken(old) error = %v, want ErrNotFound", err)
	}
	if err := ks.Move("me@example.com", "me@example.com"); err != nil {
		t.Errorf("Move(same) error = %v", err)
	}
}
