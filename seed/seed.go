package seed

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

// SeedAdmin bootstraps the first back-office account from ADMIN_EMAIL /
// ADMIN_PASSWORD so a fresh deployment is reachable. Skipped when the
// variables are unset or the admin already exists.
func SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var existing models.Admin
	err := utils.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Bootstrap admin already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	if err := utils.DB.Create(&models.Admin{
		Email:        email,
		PasswordHash: string(hash),
	}).Error; err != nil {
		return err
	}

	log.Println("Bootstrap admin seeded successfully.")
	return nil
}
