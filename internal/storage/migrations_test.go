package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateReachesExpectedVersion(t *testing.T) {
	store := createTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrationsAreOrdered(t *testing.T) {
	require.NotEmpty(t, migrations)
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "migration %q out of order", m.Description)
		assert.NotEmpty(t, m.Description)
	}
	assert.Equal(t, ExpectedSchemaVersion, migrations[len(migrations)-1].Version)
}

func TestMigrationsCreateTables(t *testing.T) {
	store := createTestStorage(t)

	for _, table := range []string{"transactions", "budget_limits", "ledger_meta"} {
		var count int
		err := store.db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='table' AND name=?
		`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s missing", table)
	}
}

func TestTransactionKindConstraint(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.db.Exec(`
		INSERT INTO transactions (position, date, category, kind, amount)
		VALUES (0, '2024-01-01', 'Food', 'refund', '1')
	`)
	assert.Error(t, err)
}
