package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aliskhannn/pickup-notifier/internal/config"
	"github.com/aliskhannn/pickup-notifier/internal/rabbitmq/queue"
)

func newScheduleCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <order-id>",
		Short: "Plan the pickup reminders of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseUUID("order id", args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd, *configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.reminders.Schedule(cmd.Context(), orderID)
			if err != nil {
				return fmt.Errorf("schedule reminders: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"order_id": orderID, "scheduled": n})
		},
	}
}

func newCancelCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Skip the reminders of an order that are still scheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseUUID("order id", args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd, *configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.reminders.Cancel(cmd.Context(), orderID)
			if err != nil {
				return fmt.Errorf("cancel reminders: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"order_id": orderID, "skipped": n})
		},
	}
}

func newDispatchCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Claim and deliver one batch of due reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, *configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.dispatcher.RunOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("dispatch: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newTestPushCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "test-push <user-id>",
		Short: "Send a test notification to every device of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUID("user id", args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(cmd, *configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			n, delivered, err := a.inbox.SendTest(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"notification": n, "push_sent": delivered})
		},
	}
}

func newEmitCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "emit <order-id> <event>",
		Short: "Publish an order lifecycle event (created, updated, cancelled, completed, deleted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseUUID("order id", args[0])
			if err != nil {
				return err
			}

			evtType, err := queue.ParseEventType(args[1])
			if err != nil {
				return err
			}

			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}

			q, closeQueue, err := connectOrderQueue(cfg.RabbitMQ)
			if err != nil {
				return err
			}
			defer closeQueue()

			evt := queue.OrderEvent{OrderID: orderID, Event: evtType, OccurredAt: time.Now().UTC()}
			if err := q.Publish(evt, cfg.Retry); err != nil {
				return fmt.Errorf("publish order event: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), evt)
		},
	}
}

func loadApp(cmd *cobra.Command, configDir string) (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	return newApp(cmd.Context(), cfg)
}

func parseUUID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", what, s)
	}

	return id, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
