// Package alert tells operators about reminders that could not be delivered.
package alert

import (
	"context"
	"fmt"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

// Notifier delivers a plain text message to an address on one channel.
type Notifier interface {
	Send(to string, msg string) error
}

// Target is an operator address on a channel, e.g. email:ops@bakery.local.
type Target struct {
	Channel string
	Address string
}

// ParseTargets parses "channel:address" pairs.
func ParseTargets(specs []string) ([]Target, error) {
	targets := make([]Target, 0, len(specs))
	for _, s := range specs {
		channel, address, ok := strings.Cut(s, ":")
		if !ok || channel == "" || address == "" {
			return nil, fmt.Errorf("invalid alert recipient %q, want channel:address", s)
		}

		targets = append(targets, Target{Channel: channel, Address: address})
	}

	return targets, nil
}

// Alerter fans failure alerts out to the configured targets.
type Alerter struct {
	notifiers map[string]Notifier
	targets   []Target
}

func New(notifiers map[string]Notifier, targets []Target) *Alerter {
	return &Alerter{notifiers: notifiers, targets: targets}
}

// Send delivers msg to one address through the named channel.
func (a *Alerter) Send(to, msg, channel string) error {
	notifier, ok := a.notifiers[channel]
	if !ok {
		return fmt.Errorf("unknown channel %s", channel)
	}

	if err := notifier.Send(to, msg); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}

	return nil
}

// ReminderFailed reports a reminder that exhausted its attempts. Delivery
// errors are logged, never returned.
func (a *Alerter) ReminderFailed(_ context.Context, rec model.NotificationRecord, reason string) {
	msg := fmt.Sprintf(
		"Pickup reminder %s (%s) for order %s failed after %d attempts: %s",
		rec.ID, rec.Kind, rec.OrderID, rec.AttemptCount, reason,
	)

	for _, t := range a.targets {
		if err := a.Send(t.Address, msg, t.Channel); err != nil {
			zlog.Logger.Error().
				Err(err).
				Str("record_id", rec.ID.String()).
				Str("channel", t.Channel).
				Msg("failed to send operator alert")
		}
	}
}
