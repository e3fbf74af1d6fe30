package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

// Dashboard returns the aggregate totals behind the admin landing view.
// Counts are computed live on every request.
func Dashboard(c *gin.Context) {
	var totalRealtors int64
	if err := utils.DB.Model(&models.Realtor{}).Count(&totalRealtors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	var undelivered int64
	if err := utils.DB.Model(&models.Notification{}).
		Where("type = ? AND delivered = ?", models.NotificationBirthdayCountdown, false).
		Count(&undelivered).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	var realtors []models.Realtor
	if err := utils.DB.Find(&realtors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	today := time.Now()
	upcomingBirthdays := 0
	for _, r := range realtors {
		if r.BirthDate.IsZero() {
			continue
		}
		if utils.NextBirthday(r.BirthDate, today).DaysUntil <= defaultWindowDays {
			upcomingBirthdays++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRealtors":            totalRealtors,
		"upcomingBirthdays":        upcomingBirthdays,
		"undeliveredNotifications": undelivered,
	})
}
