package sqlite

import (
	"context"
	"testing"

	"github.com/lu-zhengda/workapi/internal/store"
)

func TestSyncState(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	state, err := db.GetSyncState(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetSyncState() error: %v", err)
	}
	if state.AccountID != "acc-1" || state.LastSync != 0 {
		t.Errorf("empty state = %+v, want zero values with AccountID", state)
	}

	if err := db.SetSyncState(ctx, &store.SyncState{AccountID: "acc-1", MessageCount: 42, LastSync: 1750000000}); err != nil {
		t.Fatalf("SetSyncState() error: %v", err)
	}
	if err := db.SetSyncState(ctx, &store.SyncState{AccountID: "acc-1", MessageCount: 50, LastSync: 1750000100}); err != nil {
		t.Fatalf("SetSyncState(update) error: %v", err)
	}

	state, err = db.GetSyncState(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetSyncState() error: %v", err)
	}
	if state.MessageCount != 50 || state.LastSync != 1750000100 {
		t.Errorf("state = %+v, want count 50 and last_sync 1750000100", state)
	}
}
