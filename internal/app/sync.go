package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lu-zhengda/workapi/internal/provider"
	"github.com/lu-zhengda/workapi/internal/store"
)

const syncBatchSize = 100

// SyncService orchestrates synchronization between a mail provider and the
// local store for a single account.
type SyncService struct {
	store     store.Store
	provider  provider.MailProvider
	accountID string
	logger    *zap.Logger
	now       func() time.Time
}

// NewSyncService creates a SyncService that syncs the given account between
// the provider and the local store.
func NewSyncService(s store.Store, p provider.MailProvider, accountID string, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		store:     s,
		provider:  p,
		accountID: accountID,
		logger:    logger.Named("sync").With(zap.String("account_id", accountID)),
		now:       time.Now,
	}
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	RunID   string
	Fetched int
}

// Sync fetches up to count messages from the provider, normalizes each body
// once and persists the emails locally.
func (s *SyncService) Sync(ctx context.Context, count int) (*SyncResult, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	log.Info("sync started", zap.Int("limit", count))

	var (
		pageToken string
		fetched   int
	)
	for fetched < count {
		limit := min(syncBatchSize, count-fetched)

		msgs, nextToken, err := s.provider.ListMessages(ctx, provider.ListOptions{
			PageToken:  pageToken,
			MaxResults: limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list messages (fetched %d so far): %w", fetched, err)
		}
		if len(msgs) > limit {
			msgs = msgs[:limit]
		}

		for i := range msgs {
			msgs[i].ProcessBodyContent()
			if err := s.store.UpsertEmail(ctx, &msgs[i], s.accountID); err != nil {
				return nil, fmt.Errorf("failed to upsert email %s: %w", msgs[i].ID, err)
			}
		}

		fetched += len(msgs)
		log.Debug("page stored", zap.Int("fetched", fetched), zap.Int("limit", count))

		if nextToken == "" || len(msgs) == 0 {
			break
		}
		pageToken = nextToken
	}

	if err := s.store.SetSyncState(ctx, &store.SyncState{
		AccountID:    s.accountID,
		MessageCount: fetched,
		LastSync:     s.now().Unix(),
	}); err != nil {
		return nil, fmt.Errorf("failed to save sync state: %w", err)
	}

	log.Info("sync complete", zap.Int("fetched", fetched))
	return &SyncResult{RunID: runID, Fetched: fetched}, nil
}

// Refresh fetches a single message again and stores it normalized.
func (s *SyncService) Refresh(ctx context.Context, id string) error {
	msg, err := s.provider.GetMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get message %s: %w", id, err)
	}
	msg.ProcessBodyContent()
	if err := s.store.UpsertEmail(ctx, msg, s.accountID); err != nil {
		return fmt.Errorf("failed to upsert email %s: %w", id, err)
	}
	s.logger.Debug("message refreshed", zap.String("email_id", id))
	return nil
}
