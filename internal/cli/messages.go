package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/morphofolio/backend/internal/app"
	"github.com/morphofolio/backend/internal/dashboard"
	"github.com/morphofolio/backend/internal/model"
	"github.com/morphofolio/backend/internal/service"
)

const listTimeLayout = "2006-01-02 15:04"

func newMessagesCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "List and update contact messages",
	}
	cmd.AddCommand(newMessagesListCommand(opts))
	cmd.AddCommand(newMessagesMarkCommand(opts))
	return cmd
}

func newMessagesListCommand(opts *options) *cobra.Command {
	var (
		search string
		status string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List messages, newest first",
		Long: `List contact messages, newest first.

Examples:
  folioctl messages list
  folioctl messages list --status unread
  folioctl messages list --q flutter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				list, err := a.Messages.List(cmd.Context())
				if err != nil {
					if !errors.Is(err, service.ErrFetchFailed) {
						return err
					}
					slog.Warn("showing last known messages", "error", err)
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: could not load messages"))
				}
				state := dashboard.New(list).WithSearch(search).WithStatusFilter(filter)
				printMessages(cmd.OutOrStdout(), state)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&search, "q", "", "Case-insensitive search over name, email, subject and body")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "Status filter: all, unread, read, replied")
	return cmd
}

func newMessagesMarkCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id> <status>",
		Short: "Set a message's status (unread, read, replied)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				msg, err := a.Messages.UpdateStatus(cmd.Context(), args[0], status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", msg.ID, statusColor(msg.Status))
				return nil
			})
		},
	}
}

func printMessages(w io.Writer, state dashboard.State) {
	visible := state.Visible()
	if len(visible) == 0 {
		if state.FiltersActive() {
			_, _ = fmt.Fprintln(w, "No messages match the current filters.")
		} else {
			_, _ = fmt.Fprintln(w, "No messages yet.")
		}
	} else {
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 40
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("STATUS"), bold.Sprint("FROM"), bold.Sprint("SUBJECT"), bold.Sprint("RECEIVED"))
		for _, m := range visible {
			tbl.AddRow(m.ID, statusColor(m.Status), m.Name+" <"+m.Email+">", m.Subject, m.CreatedAt.Local().Format(listTimeLayout))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}

	st := state.Stats()
	_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprintf("total %d · unread %d · read %d · replied %d",
		st.Total, st.Unread, st.Read, st.Replied))
}

func statusColor(s model.MessageStatus) string {
	switch s {
	case model.StatusUnread:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	case model.StatusRead:
		return color.BlueString(string(s))
	case model.StatusReplied:
		return color.GreenString(string(s))
	default:
		return string(s)
	}
}
