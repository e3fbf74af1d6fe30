package realtors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

// GetByID returns a full profile minus the password credential, with the
// recruiter resolved.
func GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid realtor id"})
		return
	}

	var realtor models.Realtor
	if err := utils.DB.First(&realtor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Realtor not found"})
		return
	}

	recruiterName := noRecruiter
	recruiterCode := ""
	if realtor.RecruitedBy != nil {
		var recruiter models.Realtor
		if err := utils.DB.First(&recruiter, *realtor.RecruitedBy).Error; err == nil {
			recruiterName = recruiter.FullName()
			recruiterCode = recruiter.ReferralCode
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"realtor":       realtor,
		"recruiterName": recruiterName,
		"recruiterCode": recruiterCode,
		"referralLink":  realtor.ReferralLink(),
	})
}

type updateInput struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	BirthDate     *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	State         *string `json:"state"`
	Bank          *string `json:"bank"`
	AccountName   *string `json:"accountName"`
	AccountNumber *string `json:"accountNumber"`
	Avatar        *string `json:"avatar"`
}

// Update applies only the provided fields. The referral code and the
// recruiter reference are immutable post-creation and cannot be reached
// through this path.
func Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid realtor id"})
		return
	}

	var input updateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update data: " + err.Error()})
		return
	}

	var realtor models.Realtor
	if err := utils.DB.First(&realtor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Realtor not found"})
		return
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		var count int64
		utils.DB.Model(&models.Realtor{}).
			Where("email = ? AND id <> ?", email, realtor.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A realtor with this email already exists"})
			return
		}
		realtor.Email = email
	}
	if input.BirthDate != nil {
		birthDate, err := time.ParseInLocation("2006-01-02", *input.BirthDate, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date"})
			return
		}
		realtor.BirthDate = birthDate
	}
	if input.FirstName != nil {
		realtor.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		realtor.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		realtor.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.State != nil {
		realtor.State = *input.State
	}
	if input.Bank != nil {
		realtor.Bank = *input.Bank
	}
	if input.AccountName != nil {
		realtor.AccountName = *input.AccountName
	}
	if input.AccountNumber != nil {
		realtor.AccountNumber = *input.AccountNumber
	}
	if input.Avatar != nil {
		realtor.Avatar = *input.Avatar
	}

	if err := utils.DB.Save(&realtor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A realtor with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update realtor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Realtor updated successfully",
		"realtor": realtor,
	})
}

// Delete removes a realtor unless other realtors still point at them as
// recruiter. Blocking instead of cascading keeps the recruit graph from
// being silently orphaned.
func Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid realtor id"})
		return
	}

	var realtor models.Realtor
	if err := utils.DB.First(&realtor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Realtor not found"})
		return
	}

	var recruits int64
	if err := utils.DB.Model(&models.Realtor{}).
		Where("recruited_by = ?", realtor.ID).
		Count(&recruits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete realtor"})
		return
	}
	if recruits > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":    fmt.Sprintf("Cannot delete: %d realtor(s) were recruited by this account. Reassign or remove them first.", recruits),
			"recruits": recruits,
		})
		return
	}

	if err := utils.DB.Delete(&realtor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete realtor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Realtor deleted successfully"})
}
