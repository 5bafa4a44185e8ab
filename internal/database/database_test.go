package database

import (
	"testing"

	"lattice/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEngineModels_CoverEngineTables(t *testing.T) {
	wantTables := map[string]bool{
		"profiles":             false,
		"network_edges":        false,
		"trust_signals":        false,
		"connection_requests":  false,
		"interaction_feedback": false,
	}

	type tabler interface{ TableName() string }
	for _, model := range EngineModels() {
		m, ok := model.(tabler)
		require.True(t, ok, "%T must declare its table name", model)
		if _, known := wantTables[m.TableName()]; known {
			wantTables[m.TableName()] = true
		}
	}
	for table, seen := range wantTables {
		require.True(t, seen, "EngineModels should include a model for %s", table)
	}
}

func TestEngineModels_Migrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(EngineModels()...))

	// The unordered-pair uniqueness constraint must survive migration.
	require.NoError(t, db.Create(&models.NetworkEdge{FromProfileID: 1, ToProfileID: 2, Status: models.EdgeStatusActive}).Error)
	err = db.Create(&models.NetworkEdge{FromProfileID: 1, ToProfileID: 2, Status: models.EdgeStatusActive}).Error
	require.Error(t, err)
}
