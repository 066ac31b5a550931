package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderReady      OrderStatus = "READY"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Order is the subset of an order needed to schedule and render reminders.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	OrderNo      string      `json:"order_no"`
	PickupAt     time.Time   `json:"pickup_at"`
	Status       OrderStatus `json:"status"`
	CreatedBy    uuid.UUID   `json:"created_by"`
	CustomerName string      `json:"customer_name"`
	DeletedAt    *time.Time  `json:"deleted_at,omitempty"`
}

// Terminal reports whether the order no longer awaits pickup.
func (o Order) Terminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled || o.DeletedAt != nil
}

// Recipient is a user that reminders are delivered to.
type Recipient struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DeviceToken string    `json:"device_token,omitempty"` // token of the most recently seen device, empty if none
}

// DeviceToken is a registered push token of a user's device.
type DeviceToken struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Platform   string    `json:"platform"`
	Token      string    `json:"token"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
