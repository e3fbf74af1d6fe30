package realtors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/handlers/auth"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Realtor{},
		&models.Admin{},
		&models.ReferralCounter{},
	))
	require.NoError(t, db.Create(&models.ReferralCounter{ID: 1, Value: 0}).Error)

	utils.DB = db

	r := gin.New()
	r.POST("/realtors/signup", Signup)
	r.POST("/realtors/login", Login)

	protected := r.Group("/")
	protected.Use(auth.Middleware())
	{
		protected.GET("/realtors/dashboard", Dashboard)
		protected.GET("/realtors/downlines", Downlines)
		protected.GET("/realtors/list", List)
		protected.GET("/realtors/:id", GetByID)
		protected.PUT("/realtors/:id", Update)
		protected.DELETE("/realtors/:id", Delete)
	}

	return r
}

func performRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupBody(firstName, lastName, email, ref string) map[string]interface{} {
	return map[string]interface{}{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"phone":     "08030000000",
		"password":  "secret-pass-1",
		"birthDate": "1990-05-14",
		"state":     "Lagos",
		"ref":       ref,
	}
}

// signupRealtor registers through the real endpoint and returns the
// stored record plus a valid bearer token for it.
func signupRealtor(t *testing.T, r *gin.Engine, firstName, email, ref string) (models.Realtor, string) {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/realtors/signup", "", signupBody(firstName, "Tester", email, ref))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var realtor models.Realtor
	require.NoError(t, utils.DB.Where("email = ?", email).First(&realtor).Error)

	token, err := utils.GenerateToken(realtor.ID, utils.PrincipalRealtor, realtor.Role)
	require.NoError(t, err)
	return realtor, token
}

func seedManyRealtors(t *testing.T, n int) {
	t.Helper()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		realtor := models.Realtor{
			FirstName:    fmt.Sprintf("Agent%02d", i),
			LastName:     "Bulk",
			Email:        fmt.Sprintf("agent%02d@example.com", i),
			Phone:        "08030000000",
			BirthDate:    time.Date(1990, time.May, 14, 0, 0, 0, 0, time.UTC),
			PasswordHash: "x",
			ReferralCode: utils.FormatReferralCode(int64(100 + i)),
			Role:         models.RoleRealtor,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, utils.DB.Create(&realtor).Error)
	}
}
