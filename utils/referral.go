package utils

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
)

const referralCodePrefix = "pcr"

// NextReferralCode allocates the next referral code from the shared
// counter row. It must be called inside the same transaction that
// creates the realtor: the atomic increment serializes concurrent
// signups so no two can compute the same code, and a rolled-back signup
// rolls the increment back with it.
func NextReferralCode(tx *gorm.DB) (string, error) {
	res := tx.Model(&models.ReferralCounter{}).
		Where("id = ?", 1).
		Update("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return "", fmt.Errorf("advance referral counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", errors.New("referral counter is not initialized")
	}

	var counter models.ReferralCounter
	if err := tx.First(&counter, 1).Error; err != nil {
		return "", fmt.Errorf("load referral counter: %w", err)
	}

	return FormatReferralCode(counter.Value), nil
}

// FormatReferralCode renders a sequence value as a human-readable code,
// e.g. 7 -> "pcr007". Values past 999 simply widen the number.
func FormatReferralCode(value int64) string {
	return fmt.Sprintf("%s%03d", referralCodePrefix, value)
}
