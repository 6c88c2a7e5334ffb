package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/realtime"
	"github.com/teamops/dashboard/structs"
	"github.com/teamops/dashboard/types"
)

func newNotificationsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "notif"},
		Short:   "Notification commands",
	}

	cmd.AddCommand(
		newNotificationListCommand(opts),
		newNotificationReadCommand(opts),
		newNotificationReadAllCommand(opts),
		newNotificationWatchCommand(opts),
	)
	return cmd
}

func notificationRow(n structs.Notification) []string {
	read := "não"
	if n.Read {
		read = "sim"
	}
	return []string{
		n.ID,
		display.NotificationLabel(n.Type),
		n.Title,
		display.Truncate(n.Message, 60),
		display.RelativeTime(n.CreatedAt),
		read,
	}
}

var notificationHeaders = []string{"ID", "Tipo", "Título", "Mensagem", "Quando", "Lida"}

func newNotificationListCommand(opts *options) *cobra.Command {
	var (
		params structs.NotificationListParams
		unread bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unread {
				params.IsRead = types.ToPointer(false)
			}
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				page, err := e.dash.Notifications(ctx, &params)
				if err != nil {
					return err
				}
				count, err := e.dash.UnreadCount(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if opts.jsonOutput {
					return printJSON(w, map[string]any{"notifications": page, "unread": count})
				}

				rows := make([][]string, 0, len(page.Data))
				for _, n := range page.Data {
					rows = append(rows, notificationRow(n))
				}
				renderTable(w, notificationHeaders, rows)
				renderFooter(w, dashboard.NewPageInfo(page, "notificações"))
				fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d não lidas", count)))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number")
	f.IntVar(&params.Limit, "limit", 10, "items per page")
	f.BoolVar(&unread, "unread", false, "only unread notifications")
	return cmd
}

func newNotificationReadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				n, err := e.dash.MarkNotificationRead(ctx, args[0])
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return printJSON(cmd.OutOrStdout(), n)
				}
				success(cmd.OutOrStdout(), "Notificação marcada como lida")
				return nil
			})
		},
	}
}

func newNotificationReadAllCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				if err := e.dash.MarkAllNotificationsRead(ctx); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Todas as notificações foram marcadas como lidas")
				return nil
			})
		},
	}
}

func newNotificationWatchCommand(opts *options) *cobra.Command {
	var teams []string
	var company string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				w := cmd.OutOrStdout()
				client := realtime.New(e.cfg.Realtime, e.store)
				defer client.InvalidateOnNotification(e.dash.Cache())()
				client.On(realtime.EventNotification, func(data json.RawMessage) {
					var n structs.Notification
					if err := json.Unmarshal(data, &n); err != nil {
						logger.Warn(ctx, "invalid notification payload", "error", err)
						return
					}
					if opts.jsonOutput {
						_ = printJSON(w, n)
						return
					}
					fmt.Fprintln(w, titleStyle.Render(n.Title)+" "+mutedStyle.Render(display.NotificationLabel(n.Type)))
					fmt.Fprintln(w, "  "+n.Message)
				})

				if err := client.Connect(ctx); err != nil {
					return fmt.Errorf("failed to connect to notifications: %w", err)
				}
				defer client.Disconnect()

				for _, id := range teams {
					if _, err := client.JoinTeam(ctx, id); err != nil {
						logger.Warn(ctx, "failed to join team room", "team", id, "error", err)
					}
				}
				if company != "" {
					if _, err := client.JoinCompany(ctx, company); err != nil {
						logger.Warn(ctx, "failed to join company room", "company", company, "error", err)
					}
				}

				fmt.Fprintln(w, mutedStyle.Render("Aguardando notificações. Ctrl+C para sair."))
				<-ctx.Done()
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&teams, "team", nil, "team room to join, repeatable")
	cmd.Flags().StringVar(&company, "company", "", "company room to join")
	return cmd
}
