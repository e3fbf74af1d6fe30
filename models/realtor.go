package models

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	RoleRealtor = "realtor"
	RoleAdmin   = "admin"
)

type Realtor struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FirstName     string     `gorm:"not null" json:"firstName"`
	LastName      string     `gorm:"not null" json:"lastName"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone         string     `gorm:"not null" json:"phone"`
	BirthDate     time.Time  `gorm:"not null" json:"birthDate"`
	State         string     `json:"state"`
	Bank          string     `json:"bank"`
	AccountName   string     `json:"accountName"`
	AccountNumber string     `json:"accountNumber"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Avatar        string     `json:"avatar"`
	ReferralCode  string     `gorm:"uniqueIndex;not null" json:"referralCode"`
	RecruitedBy   *uint      `gorm:"index" json:"recruitedBy"`
	Role          string     `gorm:"not null;default:realtor" json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (r *Realtor) FullName() string {
	return r.FirstName + " " + r.LastName
}

// ReferralLink builds the signup link carrying this realtor's code.
func (r *Realtor) ReferralLink() string {
	base := os.Getenv("REFERRAL_BASE_URL")
	if base == "" {
		base = "https://pcrl.ng/signup"
	}
	return fmt.Sprintf("%s?ref=%s", base, url.QueryEscape(r.ReferralCode))
}

// DefaultAvatar returns a generated initials placeholder for realtors
// who never uploaded a picture.
func (r *Realtor) DefaultAvatar() string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random",
		url.QueryEscape(r.FullName()))
}
