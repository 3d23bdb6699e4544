package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/workapi/internal/app"
	"github.com/lu-zhengda/workapi/internal/domain"
	"github.com/lu-zhengda/workapi/internal/store"
)

func newListCmd() *cobra.Command {
	var labelFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached emails",
		Long:  "List cached emails in a label (defaults to INBOX), newest first.",
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

			accountID, err := resolveAccountID(cmd.Context(), db, cfg)
			if err != nil {
				return err
			}

			emails, err := db.ListEmails(cmd.Context(), store.ListEmailOptions{
				AccountID: accountID,
				Label:     labelFlag,
				Limit:     limitFlag,
			})
			if err != nil {
				return fmt.Errorf("failed to list emails: %w", err)
			}
			app.NewUrgencyRules(cfg.Urgency).ApplyAll(emails)

			if jsonFlag {
				return printJSON(toJSONEmails(emails))
			}

			if len(emails) == 0 {
				fmt.Println("No messages found.")
				return nil
			}
			return writeEmailTable(os.Stdout, emails)
		},
	}

	cmd.Flags().StringVar(&labelFlag, "label", domain.LabelInbox, "label to list (INBOX, SENT, STARRED, TRASH, SPAM, DRAFT, or custom; empty for all)")
	cmd.Flags().IntVar(&limitFlag, "limit", 25, "max emails to show")
	return cmd
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Read an email",
		Long:  "Display a cached email with its body segments and mark it seen locally.",
		Args:  cobra.ExactArgs(1),
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
			email, err := db.GetEmail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get email: %w", err)
			}
			app.NewUrgencyRules(cfg.Urgency).Apply(email)

			if !email.Flags.Seen {
				email.Flags.Seen = true
				if err := db.SetEmailFlags(ctx, email.ID, email.Flags); err != nil {
					return fmt.Errorf("failed to mark email seen: %w", err)
				}
			}

			if jsonFlag {
				return printJSON(toJSONEmailDetail(email))
			}
			return writeEmail(os.Stdout, email)
		},
	}
	return cmd
}

func newSearchCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search emails",
		Long:  "Full-text search across email subject, body segments, and sender.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			accountID, err := resolveAccountID(cmd.Context(), db, cfg)
			if err != nil {
				return err
			}

			emails, err := db.SearchEmails(cmd.Context(), query, accountID)
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}

			shown := emails
			if limitFlag > 0 && len(shown) > limitFlag {
				shown = shown[:limitFlag]
			}
			app.NewUrgencyRules(cfg.Urgency).ApplyAll(shown)

			if jsonFlag {
				return printJSON(toJSONEmails(shown))
			}

			if len(shown) == 0 {
				fmt.Println("No results found.")
				return nil
			}
			return writeEmailTable(os.Stdout, shown)
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 25, "max results to show")
	return cmd
}

func newLabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List labels on cached emails",
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

			accountID, err := resolveAccountID(cmd.Context(), db, cfg)
			if err != nil {
				return err
			}

			labels, err := db.ListLabels(cmd.Context(), accountID)
			if err != nil {
				return fmt.Errorf("failed to list labels: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONLabels(labels))
			}

			if len(labels) == 0 {
				fmt.Println("No labels found. Run 'workapi sync' first.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAILS")
			for _, l := range labels {
				fmt.Fprintf(w, "%s\t%d\n", l.Name, l.Count)
			}
			return w.Flush()
		},
	}
	return cmd
}

func writeEmailTable(out io.Writer, emails []domain.Email) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLAGS\tFROM\tSUBJECT\tDATE\tID")
	for i := range emails {
		e := &emails[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			flagMarks(e.Flags),
			truncate(e.SenderLabel(), 30),
			truncate(e.SubjectLabel(), 60),
			formatDate(e.ReceivedAt),
			e.ID,
		)
	}
	return w.Flush()
}
