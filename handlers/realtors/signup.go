package realtors

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/metrics"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

type signupInput struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required,min=7"`
	Password      string `json:"password" binding:"required,min=8"`
	BirthDate     string `json:"birthDate" binding:"required,datetime=2006-01-02"`
	State         string `json:"state"`
	Bank          string `json:"bank"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Avatar        string `json:"avatar"`
	Ref           string `json:"ref"`
}

// Signup registers a new realtor. An optional referral code is resolved
// to a recruiter before anything is written; an unknown code aborts the
// whole signup. The referral code for the new account comes from the
// shared counter inside the same transaction as the insert.
func Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup data: " + err.Error()})
		return
	}

	birthDate, err := time.ParseInLocation("2006-01-02", input.BirthDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create Realtor Account"})
		return
	}

	realtor := models.Realtor{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:         strings.TrimSpace(input.Phone),
		BirthDate:     birthDate,
		State:         input.State,
		Bank:          input.Bank,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
		Avatar:        input.Avatar,
		PasswordHash:  string(hash),
		Role:          models.RoleRealtor,
	}
	if realtor.Avatar == "" {
		realtor.Avatar = realtor.DefaultAvatar()
	}

	ref := strings.TrimSpace(input.Ref)

	err = utils.DB.Transaction(func(tx *gorm.DB) error {
		if ref != "" {
			var recruiter models.Realtor
			if err := tx.Where("referral_code = ?", ref).First(&recruiter).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errInvalidReferralCode
				}
				return err
			}
			realtor.RecruitedBy = &recruiter.ID
		}

		code, err := utils.NextReferralCode(tx)
		if err != nil {
			return err
		}
		realtor.ReferralCode = code

		return tx.Create(&realtor).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, errInvalidReferralCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referral code provided"})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A realtor with this email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create Realtor Account"})
		}
		return
	}

	metrics.SignupsTotal.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Realtor created successfully",
		"realtor": gin.H{
			"id":           realtor.ID,
			"name":         realtor.FullName(),
			"avatar":       realtor.Avatar,
			"referralCode": realtor.ReferralCode,
			"referralLink": realtor.ReferralLink(),
		},
	})
}

var errInvalidReferralCode = errors.New("invalid referral code")
