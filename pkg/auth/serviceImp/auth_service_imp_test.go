package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/auth/service"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

func setup(t *testing.T, ttl time.Duration) (*gorm.DB, service.AuthService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.UserSession{}))
	return db, New(db, ttl)
}

func TestSeedAdminAndLogin(t *testing.T) {
	db, svc := setup(t, time.Hour)

	require.NoError(t, svc.SeedAdmin("Admin@Example.com", "s3cret"))
	// Seeding again is a no-op, not a duplicate.
	require.NoError(t, svc.SeedAdmin("admin@example.com", "other"))
	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	token, u, err := svc.Login("admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", u.Role)

	// The raw token never lands in the database.
	var sess entities.UserSession
	require.NoError(t, db.First(&sess).Error)
	assert.NotEqual(t, token, sess.TokenHash)

	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, svc := setup(t, time.Hour)
	require.NoError(t, svc.SeedAdmin("admin@example.com", "s3cret"))

	_, _, err := svc.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, versioning.ErrNotFound)
	_, _, err = svc.Login("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, versioning.ErrNotFound)
	_, _, err = svc.Login("", "")
	assert.ErrorIs(t, err, versioning.ErrInvalidArgument)
}

func TestLogoutRevokesSession(t *testing.T) {
	_, svc := setup(t, time.Hour)
	require.NoError(t, svc.SeedAdmin("admin@example.com", "s3cret"))
	token, _, err := svc.Login("admin@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))
	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, versioning.ErrNotFound)

	// Unknown tokens are a silent no-op.
	require.NoError(t, svc.Logout("never-issued"))
}

func TestExpiredSessionIsRejectedAndReaped(t *testing.T) {
	db, svc := setup(t, -time.Minute)
	require.NoError(t, svc.SeedAdmin("admin@example.com", "s3cret"))
	token, _, err := svc.Login("admin@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, versioning.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entities.UserSession{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchUsersFiltersActive(t *testing.T) {
	db, svc := setup(t, time.Hour)
	require.NoError(t, db.Create(&entities.User{Email: "ann@example.com", IsActive: true}).Error)
	require.NoError(t, db.Create(&entities.User{Email: "bob@example.com", IsActive: true}).Error)
	require.NoError(t, db.Create(&entities.User{Email: "gone@example.com", IsActive: false}).Error)

	all, err := svc.SearchUsers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	anns, err := svc.SearchUsers("ann")
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, "ann@example.com", anns[0].Email)
}
