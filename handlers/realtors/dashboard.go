package realtors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Benjaminlucky/pcrl/handlers/auth"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

// Dashboard returns the caller's own summary: live downline count,
// recruiter name, referral code and link. The downline count is always
// recomputed from the store, never cached.
func Dashboard(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var realtor models.Realtor
	if err := utils.DB.First(&realtor, principal.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var downlines int64
	if err := utils.DB.Model(&models.Realtor{}).
		Where("recruited_by = ?", realtor.ID).
		Count(&downlines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	// Realtors recruited directly by an admin have no recruiter record.
	recruitedBy := "Admin"
	if realtor.RecruitedBy != nil {
		var recruiter models.Realtor
		if err := utils.DB.First(&recruiter, *realtor.RecruitedBy).Error; err == nil {
			recruitedBy = recruiter.FullName()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           realtor.ID,
		"firstName":    realtor.FirstName,
		"lastName":     realtor.LastName,
		"name":         realtor.FullName(),
		"avatar":       realtor.Avatar,
		"downlines":    downlines,
		"recruitedBy":  recruitedBy,
		"referralCode": realtor.ReferralCode,
		"referralLink": realtor.ReferralLink(),
	})
}

// Downlines lists the realtors directly recruited by the caller.
func Downlines(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var recruits []models.Realtor
	if err := utils.DB.Where("recruited_by = ?", principal.ID).
		Order("created_at DESC").
		Find(&recruits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load downlines"})
		return
	}

	rows := make([]gin.H, 0, len(recruits))
	for _, r := range recruits {
		rows = append(rows, gin.H{
			"id":           r.ID,
			"name":         r.FullName(),
			"email":        r.Email,
			"phone":        r.Phone,
			"state":        r.State,
			"avatar":       r.Avatar,
			"referralCode": r.ReferralCode,
			"createdAt":    r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(rows),
		"downlines": rows,
	})
}
