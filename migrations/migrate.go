package migrations

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

func Migrate() {
	if err := utils.DB.AutoMigrate(
		&models.Realtor{},
		&models.Admin{},
		&models.Notification{},
		&models.ReferralCounter{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := SeedReferralCounter(utils.DB); err != nil {
		log.Fatalf("Failed to seed referral counter: %v", err)
	}
}

// SeedReferralCounter creates the shared sequence row if it does not
// exist yet, starting it at the current realtor count so codes continue
// from where the old count-based scheme left off.
func SeedReferralCounter(db *gorm.DB) error {
	var counter models.ReferralCounter
	err := db.Where("id = ?", 1).First(&counter).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var count int64
	if err := db.Model(&models.Realtor{}).Count(&count).Error; err != nil {
		return err
	}

	return db.Create(&models.ReferralCounter{ID: 1, Value: count}).Error
}
