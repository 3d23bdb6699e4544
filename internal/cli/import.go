package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/importer"
)

func newImportCmd() *cobra.Command {
	var mboxFlag bool
	var labelFlag string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import an .eml message or an mbox archive into the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

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
			accountID, err := resolveAccountID(ctx, db, cfg)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()
			logger = logger.Named("import").With(zap.String("account_id", accountID), zap.String("path", path))

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			var imported, failed int
			save := func(e *domain.Email) error {
				if labelFlag != "" && !e.HasLabel(labelFlag) {
					e.Labels = append(e.Labels, labelFlag)
				}
				e.ProcessBodyContent()
				if err := db.UpsertEmail(ctx, e, accountID); err != nil {
					return fmt.Errorf("failed to store email %s: %w", e.ID, err)
				}
				imported++
				return nil
			}

			if mboxFlag {
				err = importer.ReadMbox(f, func(e *domain.Email, perr error) error {
					if perr != nil {
						failed++
						logger.Warn("skipping unreadable message", zap.Error(perr))
						return nil
					}
					return save(e)
				})
			} else {
				var e *domain.Email
				e, err = importer.ParseMessage(f)
				if err == nil {
					err = save(e)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
			logger.Info("import complete", zap.Int("imported", imported), zap.Int("failed", failed))

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "import", AccountID: accountID, Count: imported})
			}

			fmt.Printf("Imported %d messages", imported)
			if failed > 0 {
				fmt.Printf(" (%d skipped)", failed)
			}
			fmt.Println(".")
			return nil
		},
	}

	cmd.Flags().BoolVar(&mboxFlag, "mbox", false, "treat the file as an mbox archive")
	cmd.Flags().StringVar(&labelFlag, "label", domain.LabelInbox, "label applied to imported emails")
	return cmd
}
