package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/workapi/internal/app"
)

func newSyncCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch emails from the provider into the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			account, err := resolveAccount(ctx, db, cfg)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			mail, err := newRemote(cfg, account, logger)
			if err != nil {
				return err
			}

			if count <= 0 {
				count = cfg.Sync.InitialCount
			}

			if !jsonFlag {
				fmt.Printf("Syncing account %s...\n", account.ID)
			}
			res, err := app.NewSyncService(db, mail, account.ID, logger).Sync(ctx, count)
			if err != nil {
				return fmt.Errorf("failed to sync: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "sync", AccountID: account.ID, Count: res.Fetched})
			}

			fmt.Printf("Sync complete: %d messages.\n", res.Fetched)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "max messages to fetch (defaults to sync.initial_count)")
	return cmd
}
