package database

import (
	"os"
	"path/filepath"
	"testing"

	"learning_center_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

const seedYAML = `
admin:
  login: admin
  email: admin@example.com
  password: secret-pass
  first_name: Site
  last_name: Admin
about_us:
  title:
    ro: Despre noi
    en: About us
  context:
    ro: Text
`

func TestSeedCreatesAdminOnce(t *testing.T) {
	db := openTestDB(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0644))

	require.NoError(t, Seed(db, path))
	require.NoError(t, Seed(db, path))

	var admins []model.User
	require.NoError(t, db.Where("role = ?", model.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Login)
	assert.False(t, admins[0].IsTempAccount)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("secret-pass")))

	var about model.AboutUs
	require.NoError(t, db.First(&about).Error)
	assert.Equal(t, "Despre noi", about.Title.Ro)
	assert.Equal(t, "About us", about.Title.En)
}

func TestSeedSkipsMissingFile(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Seed(db, filepath.Join(t.TempDir(), "missing.yaml")))
}
