package cli

import (
	"testing"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"

	"github.com/lu-zhengda/workapi/internal/config"
	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/store"
	"github.com/lu-zhengda/workapi/internal/store/sqlite"
)

func TestNewTUISyncer(t *testing.T) {
	keyring.MockInit()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New() error: %v", err)
	}
	defer db.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	account := &domain.Account{ID: "me@example.com", Email: "me@example.com", Provider: domain.ProviderWorkAPI}

	t.Run("no stored token runs offline", func(t *testing.T) {
		if got := newTUISyncer(cfg, db, account, zap.NewNop()); got != nil {
			t.Errorf("newTUISyncer() = %v, want nil", got)
		}
	})

	t.Run("unsupported provider runs offline", func(t *testing.T) {
		other := &domain.Account{ID: "x", Provider: "imap"}
		if got := newTUISyncer(cfg, db, other, zap.NewNop()); got != nil {
			t.Errorf("newTUISyncer() = %v, want nil", got)
		}
	})

	t.Run("stored token builds a syncer", func(t *testing.T) {
		if err := store.NewKeyringTokenStore().SaveBearer(account.ID, "secret"); err != nil {
			t.Fatalf("SaveBearer() error: %v", err)
		}
		if got := newTUISyncer(cfg, db, account, zap.NewNop()); got == nil {
			t.Error("newTUISyncer() = nil, want a syncer")
		}
	})
}
