// Package message renders the user-facing text of pickup reminders.
package message

import (
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var ErrUnknownKind = errors.New("unknown reminder kind")

// pickupTimeLayout renders times like "03:30 PM".
const pickupTimeLayout = "03:04 PM"

// Rendered is a reminder ready for delivery.
type Rendered struct {
	Title string
	Body  string
}

type template struct {
	title string
	body  string // formatted with the order number and the pickup time
}

var templates = map[model.Kind]template{
	model.KindDayBefore: {
		title: "📅 Order Pickup Reminder",
		body:  "Your order #%s is ready for pickup tomorrow at %s",
	},
	model.KindSameDay: {
		title: "🔔 Pickup Today!",
		body:  "Today is pickup day! Order #%s is ready at %s",
	},
	model.KindOverdue: {
		title: "⚠️ Overdue Order",
		body:  "Your order #%s was due for pickup at %s and is still waiting for you",
	},
}

// Renderer formats reminders in the business time zone.
type Renderer struct {
	loc *time.Location
}

// NewRenderer creates a renderer. A nil location means UTC.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}

	return &Renderer{loc: loc}
}

// Render builds the title and body of a reminder of the given kind for an order.
func (r *Renderer) Render(kind model.Kind, order model.Order) (Rendered, error) {
	tpl, ok := templates[kind]
	if !ok {
		return Rendered{}, fmt.Errorf("render %q: %w", kind, ErrUnknownKind)
	}

	pickup := order.PickupAt.In(r.loc).Format(pickupTimeLayout)

	return Rendered{
		Title: tpl.title,
		Body:  fmt.Sprintf(tpl.body, order.OrderNo, pickup),
	}, nil
}
