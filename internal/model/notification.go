package model

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the reminder category. Each kind has its own timing rule and message template.
type Kind string

const (
	KindDayBefore Kind = "day_before"
	KindSameDay   Kind = "same_day"
	KindOverdue   Kind = "overdue"
)

// Status is the state of a NotificationRecord.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusProcessing Status = "processing" // claimed by a dispatcher, delivery in progress
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed || s == StatusSkipped
}

// NotificationRecord is a durable reminder entry for an order.
type NotificationRecord struct {
	ID           uuid.UUID  `json:"id"`             // unique identifier of the record
	OrderID      uuid.UUID  `json:"order_id"`       // order the reminder concerns
	TargetUserID uuid.UUID  `json:"target_user_id"` // recipient
	Kind         Kind       `json:"kind"`           // reminder category
	ScheduledFor time.Time  `json:"scheduled_for"`  // moment the reminder becomes due
	Status       Status     `json:"status"`         // current state
	AttemptCount int        `json:"attempt_count"`  // delivery attempts made so far
	Error        *string    `json:"error,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	ClaimedAt    *time.Time `json:"claimed_at,omitempty"`
	ClaimedBy    *string    `json:"claimed_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserNotification is the in-app inbox entry shown to a user.
type UserNotification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	RecordID  *uuid.UUID `json:"record_id,omitempty"` // dispatch that produced the entry, nil for ad-hoc ones
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
