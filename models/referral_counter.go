package models

// ReferralCounter is a single-row sequence backing referral code
// assignment. It is incremented atomically in place inside the signup
// transaction so concurrent signups can never compute the same code.
type ReferralCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}
