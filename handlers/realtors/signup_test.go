package realtors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

func TestSignupAssignsSequentialCodes(t *testing.T) {
	r := setupTest(t)

	mary, _ := signupRealtor(t, r, "Mary", "mary@x.com", "")
	chinedu, _ := signupRealtor(t, r, "Chinedu", "chinedu@x.com", "")

	assert.Equal(t, "pcr001", mary.ReferralCode)
	assert.Equal(t, "pcr002", chinedu.ReferralCode)
	assert.Nil(t, mary.RecruitedBy)
	assert.Equal(t, models.RoleRealtor, mary.Role)
	assert.NotEmpty(t, mary.Avatar)
	assert.NotEqual(t, "secret-pass-1", mary.PasswordHash)
}

func TestSignupResolvesRecruiterFromCode(t *testing.T) {
	r := setupTest(t)

	mary, token := signupRealtor(t, r, "Mary", "mary@x.com", "")
	recruit, _ := signupRealtor(t, r, "Chinedu", "chinedu@x.com", mary.ReferralCode)

	require.NotNil(t, recruit.RecruitedBy)
	assert.Equal(t, mary.ID, *recruit.RecruitedBy)

	// The recruiter's live downline count reflects the new signup.
	w := performRequest(r, http.MethodGet, "/realtors/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["downlines"])
}

func TestSignupRejectsUnknownReferralCode(t *testing.T) {
	r := setupTest(t)

	w := performRequest(r, http.MethodPost, "/realtors/signup", "",
		signupBody("Mary", "Tester", "mary@x.com", "pcr999"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid referral code")

	// The rejected signup must leave no partial state behind.
	var count int64
	require.NoError(t, utils.DB.Model(&models.Realtor{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var counter models.ReferralCounter
	require.NoError(t, utils.DB.First(&counter, 1).Error)
	assert.Equal(t, int64(0), counter.Value)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	r := setupTest(t)

	signupRealtor(t, r, "Mary", "mary@x.com", "")

	w := performRequest(r, http.MethodPost, "/realtors/signup", "",
		signupBody("Imposter", "Tester", "Mary@X.com", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	var count int64
	require.NoError(t, utils.DB.Model(&models.Realtor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupValidatesInput(t *testing.T) {
	r := setupTest(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing email", func(b map[string]interface{}) { delete(b, "email") }},
		{"malformed email", func(b map[string]interface{}) { b["email"] = "not-an-email" }},
		{"short password", func(b map[string]interface{}) { b["password"] = "short" }},
		{"missing birth date", func(b map[string]interface{}) { delete(b, "birthDate") }},
		{"malformed birth date", func(b map[string]interface{}) { b["birthDate"] = "14/05/1990" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := signupBody("Mary", "Tester", "mary@x.com", "")
			tt.mutate(body)
			w := performRequest(r, http.MethodPost, "/realtors/signup", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	require.NoError(t, utils.DB.Model(&models.Realtor{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLogin(t *testing.T) {
	r := setupTest(t)
	signupRealtor(t, r, "Mary", "mary@x.com", "")

	w := performRequest(r, http.MethodPost, "/realtors/login", "", map[string]interface{}{
		"email":    "mary@x.com",
		"password": "secret-pass-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	w = performRequest(r, http.MethodPost, "/realtors/login", "", map[string]interface{}{
		"email":    "mary@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/realtors/login", "", map[string]interface{}{
		"email":    "nobody@x.com",
		"password": "secret-pass-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTest(t)

	w := performRequest(r, http.MethodGet, "/realtors/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodGet, "/realtors/list", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
