package domain

import "time"

// Status is the booking lifecycle status. The happy path is a strict chain
// PENDING → ACCEPTED → CONFIRMED → COMPLETED; CANCELED absorbs from any
// non-terminal status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// Next returns the next happy-path hop. ok is false for terminal and unknown
// statuses.
func Next(s Status) (Status, bool) {
	switch s {
	case StatusPending:
		return StatusAccepted, true
	case StatusAccepted:
		return StatusConfirmed, true
	case StatusConfirmed:
		return StatusCompleted, true
	default:
		return s, false
	}
}

// Terminal reports whether the payment path may no longer move the booking.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Booking mirrors the shared bookings table. The table is owned by the
// booking-management service; payments only advances status/updated_at.
type Booking struct {
	ID         int64  `gorm:"primaryKey"`
	CustomerID int64  `gorm:"index"`
	ProviderID int64  `gorm:"index"`
	Status     Status `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Booking) TableName() string { return "bookings" }
