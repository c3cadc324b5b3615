package models

import (
	"encoding/json"
	"time"
)

// Review is one rating per (user, menu item, order).
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_reviews_user_item_order,priority:1" json:"userId"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_item_order,priority:2" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderID    uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_item_order,priority:3" json:"orderId"`
	Order      *Order    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type named struct {
	Name string `json:"name"`
}

// MarshalJSON exposes only the reviewer's and the item's names.
func (r Review) MarshalJSON() ([]byte, error) {
	type plain Review
	out := struct {
		plain
		User     *named `json:"user,omitempty"`
		MenuItem *named `json:"menuItem,omitempty"`
	}{plain: plain(r)}
	if r.User != nil {
		out.User = &named{Name: r.User.Name}
	}
	if r.MenuItem != nil {
		out.MenuItem = &named{Name: r.MenuItem.Name}
	}
	return json.Marshal(out)
}
