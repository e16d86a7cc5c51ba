package database

import (
	"errors"

	"github.com/repairhub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultAdmin defines the bootstrap admin credentials.
type DefaultAdmin struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

func GetDefaultAdmin() DefaultAdmin {
	return DefaultAdmin{
		FirstName: "Admin",
		LastName:  "RepairHub",
		Email:     "admin@repairhub.local",
		Password:  "Admin@123", // Change this in production!
		Phone:     "+31612345678",
	}
}

// Seed creates initial data for the database.
func Seed(db *gorm.DB) error {
	return SeedUsers(db)
}

// SeedUsers creates the default admin user if it does not exist yet.
func SeedUsers(db *gorm.DB) error {
	admin := GetDefaultAdmin()

	var existing model.User
	result := db.Where("email = ?", admin.Email).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		Email:        admin.Email,
		Password:     string(hashedPassword),
		Phone:        admin.Phone,
		Role:         model.RoleAdmin,
		TokenVersion: 1,
	}

	return db.Create(&user).Error
}
