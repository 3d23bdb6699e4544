package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/workapi/internal/app"
)

func newAttendeesCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "attendees <event-id>",
		Short: "List the attendees of a calendar event",
		Long:  "List event attendees from the local cache, fetching them from the provider when not cached or with --refresh.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]

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

			calendar, err := newRemote(cfg, account, logger)
			if err != nil {
				return err
			}

			svc := app.NewAttendeeService(db, calendar, account.ID, logger)
			list := svc.List
			if refresh {
				list = svc.Refresh
			}
			attendees, err := list(ctx, eventID)
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(toJSONAttendees(attendees))
			}

			if len(attendees) == 0 {
				fmt.Println("No attendees.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ATTENDEE\tEMAIL\tRESPONSE\tGUESTS")
			for _, a := range attendees {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.Label(), a.EmailAddress, a.ResponseStatus, a.AdditionalGuests)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch from the provider even when cached")
	return cmd
}
