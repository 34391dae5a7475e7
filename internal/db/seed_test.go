package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog/internal/db"
	"catalog/internal/models"
)

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestMigrateIsIdempotent(t *testing.T) {
	gdb := openMigrated(t)
	require.NoError(t, db.Migrate(gdb))
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := openMigrated(t)

	require.NoError(t, db.Seed(gdb))
	require.NoError(t, db.Seed(gdb), "second bootstrap run")

	var admins int64
	require.NoError(t, gdb.Model(&models.AdminUser{}).Count(&admins).Error)
	assert.EqualValues(t, 1, admins, "exactly one default admin")

	var products int64
	require.NoError(t, gdb.Model(&models.Product{}).Count(&products).Error)
	assert.EqualValues(t, 3, products, "sample products seeded once")
}

func TestSeedDefaultAdminCredential(t *testing.T) {
	gdb := openMigrated(t)
	require.NoError(t, db.Seed(gdb))

	var admin models.AdminUser
	require.NoError(t, gdb.First(&admin, "email = ?", db.DefaultAdminEmail).Error)
	assert.True(t, models.CheckPassword(admin.PasswordHash, "admin123"))
	assert.NotContains(t, admin.PasswordHash, "admin123", "password is stored hashed")
}

func TestSeedProductsAreActiveAndImageless(t *testing.T) {
	gdb := openMigrated(t)
	require.NoError(t, db.Seed(gdb))

	var items []models.Product
	require.NoError(t, gdb.Find(&items).Error)
	require.Len(t, items, 3)
	for _, p := range items {
		assert.True(t, p.IsActive)
		assert.Empty(t, p.ImageFilename)
		assert.NotZero(t, p.CreatedAt)
	}
}

func TestSeedProductsOrderIsDeterministic(t *testing.T) {
	gdb := openMigrated(t)
	require.NoError(t, db.Seed(gdb))

	var items []models.Product
	require.NoError(t, gdb.Order("created_at desc").Find(&items).Error)
	require.Len(t, items, 3)

	// у каждой строки своя метка, последняя вставленная — новейшая
	assert.Equal(t, "Arracadas Diseño Sutil 18K", items[0].Name)
	assert.Equal(t, "Cadena Venezolana 14K", items[1].Name)
	assert.Equal(t, "Anillo Clásico 18K", items[2].Name)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
	assert.True(t, items[1].CreatedAt.After(items[2].CreatedAt))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := db.Open("mongodb", "whatever")
	assert.Error(t, err)
}
