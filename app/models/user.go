package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User is an account. Password holds a bcrypt hash, or plaintext for
// accounts created before hashing; it is never serialised.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     *string   `gorm:"size:30" json:"phone"`
	Role      string    `gorm:"size:20;not null;default:CUSTOMER;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Owner is the public projection of a user attached to orders and reviews.
type Owner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (u *User) Owner() *Owner {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &Owner{ID: u.ID, Name: u.Name, Email: u.Email}
}
