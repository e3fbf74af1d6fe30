package migrations

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Benjaminlucky/pcrl/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Realtor{}, &models.ReferralCounter{}))
	return db
}

func TestSeedReferralCounterStartsAtRealtorCount(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Realtor{
			FirstName:    "Agent",
			LastName:     "Existing",
			Email:        fmt.Sprintf("agent%d@example.com", i),
			Phone:        "080",
			BirthDate:    time.Date(1990, time.May, 14, 0, 0, 0, 0, time.UTC),
			PasswordHash: "x",
			ReferralCode: fmt.Sprintf("pcr%03d", i+1),
			Role:         models.RoleRealtor,
		}).Error)
	}

	require.NoError(t, SeedReferralCounter(db))

	var counter models.ReferralCounter
	require.NoError(t, db.First(&counter, 1).Error)
	assert.Equal(t, int64(3), counter.Value)

	// Re-running is a no-op, even after the counter has advanced.
	require.NoError(t, db.Model(&counter).Update("value", 10).Error)
	require.NoError(t, SeedReferralCounter(db))
	require.NoError(t, db.First(&counter, 1).Error)
	assert.Equal(t, int64(10), counter.Value)
}
