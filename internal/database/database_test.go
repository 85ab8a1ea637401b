package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesSchema(t *testing.T) {
	db, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"wrestlers", "records", "championships", "stables", "cards", "match_history"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.db")

	db, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wrestlers (name, gender, alignment, brand) VALUES ('Alice', 'Female', 'Face', 'RAW')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM wrestlers`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWrestlerNameIsUnique(t *testing.T) {
	db, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO wrestlers (name, gender, alignment, brand) VALUES ('Alice', 'Female', 'Face', 'RAW')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wrestlers (name, gender, alignment, brand) VALUES ('Alice', 'Male', 'Heel', 'NXT')`)
	assert.Error(t, err)
}
