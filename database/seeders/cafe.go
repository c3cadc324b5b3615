package seeders

import (
	"gorm.io/gorm"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/pkg/auth"
)

func init() {
	Register("users", seedUsers)
	Register("menu", seedMenu)
}

type seedUser struct {
	name, email, password, role string
}

var demoUsers = []seedUser{
	{"Admin Kafe", "admin@example.com", "admin123", models.RoleAdmin},
	{"Pelanggan Demo", "customer@example.com", "customer123", models.RoleCustomer},
}

// seedUsers creates the demo accounts unless their emails already exist.
func seedUsers(db *gorm.DB) error {
	for _, u := range demoUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{
			Name: u.name, Email: u.email, Password: hash, Role: u.role,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

var demoMenu = []models.MenuItem{
	{Name: "Nasi Goreng Kampung", Description: "Fried rice with egg and crackers", Category: models.CategoryMainCourse, Price: 28000},
	{Name: "Mie Ayam", Description: "Chicken noodles with bok choy", Category: models.CategoryMainCourse, Price: 25000},
	{Name: "Espresso", Description: "Single origin, double shot", Category: models.CategoryCoffee, Price: 18000},
	{Name: "Kopi Susu Gula Aren", Description: "Iced latte with palm sugar", Category: models.CategoryCoffee, Price: 22000},
	{Name: "Matcha Latte", Category: models.CategoryNonCoffee, Price: 26000},
	{Name: "Es Teh Manis", Category: models.CategoryNonCoffee, Price: 8000},
	{Name: "Kentang Goreng", Description: "French fries", Category: models.CategorySnack, Price: 15000},
	{Name: "Pisang Goreng", Description: "Banana fritters with cheese", Category: models.CategorySnack, Price: 17000},
	{Name: "Brownies", Category: models.CategoryDessert, Price: 20000},
}

// seedMenu inserts the sample catalog, skipping names already present.
func seedMenu(db *gorm.DB) error {
	for _, item := range demoMenu {
		var count int64
		if err := db.Model(&models.MenuItem{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		it := item
		if err := db.Create(&it).Error; err != nil {
			return err
		}
	}
	return nil
}
