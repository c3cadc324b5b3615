package models

import (
	"encoding/json"
	"time"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions lists the allowed targets for each non-terminal status.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether s -> to is an edge of the lifecycle.
func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// TerminalStatuses returns the statuses shown in order history.
func TerminalStatuses() []Status {
	return []Status{StatusCompleted, StatusCancelled}
}

// Order is a checkout. TotalPrice is fixed at creation from the item
// snapshots and never recomputed.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"userId"`
	User          *User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status        Status      `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	TotalPrice    int64       `gorm:"not null;default:0" json:"totalPrice"`
	Notes         *string     `gorm:"type:text" json:"notes"`
	PaymentMethod *string     `gorm:"size:100" json:"paymentMethod"`
	Items         []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// MarshalJSON exposes the owner as {id, name, email} when it was loaded.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		User *Owner `json:"user,omitempty"`
	}{plain(o), o.User.Owner()})
}

// OrderItem snapshots the catalog price at checkout. MenuItemID becomes
// NULL when the menu item is later deleted.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"orderId"`
	MenuItemID *uint     `gorm:"index" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"menuItem"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
