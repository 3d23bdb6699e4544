package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lu-zhengda/workapi/internal/app"
	"github.com/lu-zhengda/workapi/internal/config"
	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/logging"
	"github.com/lu-zhengda/workapi/internal/provider"
	"github.com/lu-zhengda/workapi/internal/provider/google"
	"github.com/lu-zhengda/workapi/internal/provider/workapi"
	"github.com/lu-zhengda/workapi/internal/store"
	"github.com/lu-zhengda/workapi/internal/store/sqlite"
	"github.com/lu-zhengda/workapi/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	// verboseFlag forces debug logging.
	verboseFlag bool

	// accountFlag selects the account; empty means config default or first account.
	accountFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "workapi",
		Short:   "Work API mail and calendar client",
		Long:    "A terminal client for Work API mail and calendar data, with Gmail support.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			account, err := resolveAccount(cmd.Context(), db, cfg)
			if err != nil {
				return err
			}

			logger, err := logging.ForTUI(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return tui.Run(tui.Options{
				Store:        db,
				Syncer:       newTUISyncer(cfg, db, account, logger),
				AccountID:    account.ID,
				Rules:        app.NewUrgencyRules(cfg.Urgency),
				SyncCount:    cfg.Sync.InitialCount,
				SyncInterval: cfg.SyncInterval(),
			})
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("workapi %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&accountFlag, "account", "", "account ID to use (defaults to config default or first account)")
	root.AddCommand(newAccountCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReadCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newLabelsCmd())
	root.AddCommand(newAttendeesCmd())
	root.AddCommand(newImportCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB creates the data directory and opens the SQLite database.
func openDB() (*sqlite.DB, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workapi.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the command-line logger; --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lc := cfg.Log
	if verboseFlag {
		lc.Level = "debug"
	}
	return logging.New(lc)
}

// resolveAccountID determines which account to use: the --account flag,
// then the config default, then the first account in the database.
func resolveAccountID(ctx context.Context, db store.Store, cfg *config.Config) (string, error) {
	if accountFlag != "" {
		return accountFlag, nil
	}
	if cfg.Accounts.Default != "" {
		return cfg.Accounts.Default, nil
	}

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("no accounts configured; run 'workapi account add' first")
	}
	return accounts[0].ID, nil
}

func resolveAccount(ctx context.Context, db store.Store, cfg *config.Config) (*domain.Account, error) {
	id, err := resolveAccountID(ctx, db, cfg)
	if err != nil {
		return nil, err
	}
	account, err := db.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("account %s is not configured; run 'workapi account list'", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

// resolveGmailCredentials sets Gmail OAuth credentials using the first
// available source: config file, then environment variables.
func resolveGmailCredentials(cfg *config.Config) error {
	if cfg.Gmail.ClientID != "" && cfg.Gmail.ClientSecret != "" {
		google.SetCredentials(cfg.Gmail.ClientID, cfg.Gmail.ClientSecret)
		return nil
	}

	clientID := os.Getenv("GMAIL_CLIENT_ID")
	clientSecret := os.Getenv("GMAIL_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		google.SetCredentials(clientID, clientSecret)
		return nil
	}

	return google.EnsureCredentials()
}

// newTUISyncer returns a sync service for the account, or nil when no remote
// provider can be built. The TUI then runs on the local cache only.
func newTUISyncer(cfg *config.Config, db store.Store, account *domain.Account, logger *zap.Logger) tui.Syncer {
	mail, err := newRemote(cfg, account, logger)
	if err != nil {
		logger.Warn("remote unavailable, running offline",
			zap.String("account_id", account.ID), zap.Error(err))
		return nil
	}
	return app.NewSyncService(db, mail, account.ID, logger)
}

// remote is a provider serving both mail and calendar data.
type remote interface {
	provider.MailProvider
	provider.CalendarProvider
}

// newRemote builds the provider for an account from its stored credentials.
func newRemote(cfg *config.Config, account *domain.Account, logger *zap.Logger) (remote, error) {
	tokenStore := store.NewKeyringTokenStore()

	switch account.Provider {
	case domain.ProviderGmail:
		if err := resolveGmailCredentials(cfg); err != nil {
			return nil, err
		}
		return google.New(account.ID, tokenStore), nil

	case domain.ProviderWorkAPI, "":
		token, err := tokenStore.LoadToken(account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load work api token for %s: %w", account.ID, err)
		}
		c, err := workapi.NewWithToken(cfg.API.BaseURL, token.AccessToken, cfg.APITimeout(),
			workapi.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported provider %q for account %s", account.Provider, account.ID)
	}
}
