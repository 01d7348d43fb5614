package db

import (
	"path/filepath"
	"testing"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteFileAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "food_reco.db"),
	}

	gdb, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(gdb))
	for _, m := range Models() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, testDB.Create(&model.Restaurant{Name: "Chez Luigi"}).Error)
	require.NoError(t, testDB.Create(&model.Favorite{RestaurantID: 1, UserID: "default"}).Error)

	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	testDB.Model(&model.Restaurant{}).Count(&count)
	assert.Zero(t, count)
	testDB.Model(&model.Favorite{}).Count(&count)
	assert.Zero(t, count)
}
