package ws

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/handlers/auth"
	"github.com/Benjaminlucky/pcrl/models"
	"github.com/Benjaminlucky/pcrl/utils"
)

func setupServer(t *testing.T, hub *Hub) (*httptest.Server, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Realtor{}, &models.Admin{}))
	utils.DB = db

	admin := models.Admin{Email: "boss@pcrl.ng", PasswordHash: "x"}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := utils.GenerateToken(admin.ID, utils.PrincipalAdmin, models.RoleAdmin)
	require.NoError(t, err)

	realtor := models.Realtor{
		FirstName: "Mary", LastName: "Tester", Email: "mary@x.com",
		Phone: "080", PasswordHash: "x", ReferralCode: "pcr001",
		Role: models.RoleRealtor,
	}
	require.NoError(t, db.Create(&realtor).Error)
	realtorToken, err := utils.GenerateToken(realtor.ID, utils.PrincipalRealtor, realtor.Role)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws", auth.Middleware(), hub.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, adminToken, realtorToken
}

func dial(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHubBroadcastsToConnectedAdmins(t *testing.T) {
	hub := NewHub()
	srv, adminToken, _ := setupServer(t, hub)

	assert.False(t, hub.HasAdmins())
	assert.Equal(t, 0, hub.BroadcastToAdmins(map[string]string{"message": "nobody home"}))

	conn, _, err := dial(t, srv, adminToken)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens just after the handshake completes.
	require.Eventually(t, hub.HasAdmins, time.Second, 10*time.Millisecond)

	sent := hub.BroadcastToAdmins(map[string]string{"message": "happy birthday"})
	assert.Equal(t, 1, sent)

	var payload map[string]string
	require.NoError(t, conn.ReadJSON(&payload))
	assert.Equal(t, "happy birthday", payload["message"])
}

func TestHubRejectsRealtorConnections(t *testing.T) {
	hub := NewHub()
	srv, _, realtorToken := setupServer(t, hub)

	_, resp, err := dial(t, srv, realtorToken)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, hub.HasAdmins())
}
