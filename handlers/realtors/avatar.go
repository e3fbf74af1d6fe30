package realtors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Benjaminlucky/pcrl/handlers/auth"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

const maxAvatarBytes = 25 << 20 // 25MB

// UpdateAvatar accepts a multipart image, pushes it to the image host and
// stores the returned URL on the caller's profile.
func UpdateAvatar(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	if principal.Typ != utils.PrincipalRealtor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only realtors have profile avatars"})
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}
	if header.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be smaller than 25MB"})
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read avatar file"})
		return
	}
	defer file.Close()

	url, err := utils.UploadAvatar(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	if err := utils.DB.Model(&models.Realtor{}).
		Where("id = ?", principal.ID).
		Update("avatar", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar updated successfully",
		"avatar":  url,
	})
}
