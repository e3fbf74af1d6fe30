package realtors

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// Sentinel recruiter name for realtors who signed up without a code.
	noRecruiter = "None"
)

// Whitelisted sort columns. Anything else falls back to newest-first.
var sortColumns = map[string]string{
	"firstName":    "first_name",
	"lastName":     "last_name",
	"email":        "email",
	"referralCode": "referral_code",
	"state":        "state",
	"createdAt":    "created_at",
}

// List returns a paginated, searchable, sortable realtor table with
// recruiter names resolved. Out-of-range pages return an empty list, not
// an error.
func List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	search := strings.TrimSpace(c.Query("search"))

	var total int64
	if err := searchQuery(search).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch realtors"})
		return
	}

	var records []models.Realtor
	err := searchQuery(search).
		Order(orderClause(c.Query("sort"))).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch realtors"})
		return
	}

	recruiters, err := recruitersByID(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch realtors"})
		return
	}

	rows := make([]gin.H, 0, len(records))
	for _, r := range records {
		recruiterName := noRecruiter
		recruiterCode := ""
		if r.RecruitedBy != nil {
			if recruiter, ok := recruiters[*r.RecruitedBy]; ok {
				recruiterName = recruiter.FullName()
				recruiterCode = recruiter.ReferralCode
			}
		}
		rows = append(rows, gin.H{
			"id":            r.ID,
			"firstName":     r.FirstName,
			"lastName":      r.LastName,
			"email":         r.Email,
			"phone":         r.Phone,
			"state":         r.State,
			"avatar":        r.Avatar,
			"referralCode":  r.ReferralCode,
			"recruiterName": recruiterName,
			"recruiterCode": recruiterCode,
			"createdAt":     r.CreatedAt,
		})
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"totalPages": totalPages,
		"page":       page,
		"limit":      limit,
		"realtors":   rows,
	})
}

func searchQuery(search string) *gorm.DB {
	query := utils.DB.Model(&models.Realtor{})
	if search == "" {
		return query
	}
	like := "%" + strings.ToLower(search) + "%"
	return query.Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(referral_code) LIKE ?",
		like, like, like, like,
	)
}

func orderClause(sort string) string {
	sort = strings.TrimSpace(sort)
	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		sort = sort[1:]
	}
	column, ok := sortColumns[sort]
	if !ok {
		return "created_at DESC"
	}
	return column + " " + direction
}

// recruitersByID loads the recruiters referenced by a page of realtors
// in one query.
func recruitersByID(page []models.Realtor) (map[uint]models.Realtor, error) {
	ids := make([]uint, 0, len(page))
	for _, r := range page {
		if r.RecruitedBy != nil {
			ids = append(ids, *r.RecruitedBy)
		}
	}
	result := make(map[uint]models.Realtor, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var recruiters []models.Realtor
	if err := utils.DB.Where("id IN ?", ids).Find(&recruiters).Error; err != nil {
		return nil, err
	}
	for _, r := range recruiters {
		result[r.ID] = r
	}
	return result, nil
}
