package models

import "time"

// Category is the fixed menu classification.
type Category string

const (
	CategoryMainCourse Category = "MAINCOURSE"
	CategoryCoffee     Category = "COFFEE"
	CategoryNonCoffee  Category = "NONCOFFEE"
	CategorySnack      Category = "SNACK"
	CategoryDessert    Category = "DESERT" // stored spelling kept for existing clients
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryMainCourse, CategoryCoffee, CategoryNonCoffee, CategorySnack, CategoryDessert}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// MenuItem is a catalog entry. Price is in whole currency units.
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    Category  `gorm:"size:20;not null;index" json:"category"`
	Price       int64     `gorm:"not null;default:0" json:"price"`
	ImageURL    string    `gorm:"size:1024" json:"imageUrl"`
	ImagePath   string    `gorm:"size:512" json:"-"` // storage key when the image was uploaded here
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
