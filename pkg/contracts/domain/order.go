package domain

import (
	"time"
)

// RawOrder is a single row of a raw orders export before any type
// enforcement. Every field carries the original cell text; an empty string
// means the cell was blank. Typing happens in the cleaning stage so that a
// malformed amount in one row never aborts the whole load.
type RawOrder struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Quantity  string `json:"quantity,omitempty"`
	Status    string `json:"status"`
	OrderDate string `json:"order_date"`
}

// Order is a cleaned order record with enforced types. Records of this type
// have passed the critical-field checks: OrderID, UserID, Amount and
// OrderDate are always present.
type Order struct {
	OrderID   string    `json:"order_id" validate:"required"`
	UserID    string    `json:"user_id" validate:"required"`
	Amount    float64   `json:"amount"`
	Quantity  int64     `json:"quantity,omitempty"`
	Status    string    `json:"status" validate:"required"`
	OrderDate time.Time `json:"order_date"`
}

// Canonical status vocabulary. The cleaner maps known variants onto these
// values and passes unknown labels through unchanged.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusRefund  = "refund"
)
