package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/workapi/internal/config"
	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/provider/google"
	"github.com/lu-zhengda/workapi/internal/provider/workapi"
	"github.com/lu-zhengda/workapi/internal/store"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountRemoveCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	var email string
	var providerName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a Work API account (bearer token) or a Gmail account (OAuth)",
		Long: "Add an account. Work API accounts read a bearer token from stdin;\n" +
			"Gmail accounts run the OAuth flow in the browser.",
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

			if !cmd.Flags().Changed("provider") && cfg.Sync.Provider != "" {
				providerName = cfg.Sync.Provider
			}

			var account *domain.Account
			switch providerName {
			case domain.ProviderWorkAPI:
				account, err = addWorkAPIAccount(cmd, cfg, email)
			case domain.ProviderGmail:
				account, err = addGmailAccount(cmd, cfg, email)
			default:
				return fmt.Errorf("unsupported provider %q (use %s or %s)", providerName, domain.ProviderWorkAPI, domain.ProviderGmail)
			}
			if err != nil {
				return err
			}

			if err := db.CreateAccount(cmd.Context(), account); err != nil {
				return fmt.Errorf("failed to store account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", Email: account.Email, AccountID: account.ID})
			}

			fmt.Printf("Account added: %s (%s)\n", account.Email, account.Provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (required for workapi, auto-detected for gmail)")
	cmd.Flags().StringVar(&providerName, "provider", domain.ProviderWorkAPI, "account provider (workapi or gmail, default from sync.provider)")
	return cmd
}

func addWorkAPIAccount(cmd *cobra.Command, cfg *config.Config, email string) (*domain.Account, error) {
	if email == "" {
		return nil, fmt.Errorf("--email is required for workapi accounts")
	}

	if !jsonFlag {
		fmt.Fprint(cmd.ErrOrStderr(), "Paste the Work API bearer token and press Enter: ")
	}
	token, err := readToken(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	client, err := workapi.NewWithToken(cfg.API.BaseURL, token, cfg.APITimeout(), workapi.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := client.Authenticate(cmd.Context()); err != nil {
		return nil, err
	}

	tokenStore := store.NewKeyringTokenStore()
	if err := tokenStore.SaveBearer(email, token); err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:          email,
		Email:       email,
		Provider:    domain.ProviderWorkAPI,
		DisplayName: email,
		CreatedAt:   time.Now(),
	}, nil
}

// readToken reads the first non-empty line of r.
func readToken(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if token := strings.TrimSpace(sc.Text()); token != "" {
			return token, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return "", fmt.Errorf("no token provided")
}

func addGmailAccount(cmd *cobra.Command, cfg *config.Config, email string) (*domain.Account, error) {
	if err := resolveGmailCredentials(cfg); err != nil {
		return nil, err
	}

	tokenStore := store.NewKeyringTokenStore()

	// Use email as account ID if provided, otherwise use a temporary ID
	// that will be replaced after OAuth when we learn the real email.
	accountID := email
	if accountID == "" {
		accountID = fmt.Sprintf("gmail-%d", time.Now().UnixNano())
	}

	p := google.New(accountID, tokenStore)

	ctx := cmd.Context()
	fmt.Println("Starting Gmail OAuth flow...")
	if err := p.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if email == "" {
		profileEmail, err := p.GetProfile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile email: %w", err)
		}
		email = profileEmail

		if err := tokenStore.Move(accountID, email); err != nil {
			return nil, fmt.Errorf("failed to re-key token: %w", err)
		}
		accountID = email
	}

	return &domain.Account{
		ID:          accountID,
		Email:       email,
		Provider:    domain.ProviderGmail,
		DisplayName: email,
		CreatedAt:   time.Now(),
	}, nil
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			accounts, err := db.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONAccounts(accounts))
			}

			if len(accounts) == 0 {
				fmt.Println("No accounts configured. Run 'workapi account add' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tPROVIDER\tCREATED")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.ID,
					a.Email,
					a.Provider,
					a.CreatedAt.Format(time.DateOnly),
				)
			}
			return w.Flush()
		},
	}
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [email]",
		Short: "Remove an account and its cached data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			accounts, err := db.ListAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			var target *domain.Account
			for i := range accounts {
				if accounts[i].Email == email || accounts[i].ID == email {
					target = &accounts[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("account not found: %s", email)
			}

			if err := db.DeleteAccount(ctx, target.ID); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			tokenStore := store.NewKeyringTokenStore()
			if err := tokenStore.DeleteToken(target.ID); err != nil {
				// Non-fatal: token may already be gone.
				fmt.Fprintf(os.Stderr, "Warning: could not remove token from keyring: %v\n", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", Email: target.Email})
			}

			fmt.Printf("Account removed: %s\n", target.Email)
			return nil
		},
	}
}
