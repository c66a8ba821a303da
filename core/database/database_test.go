package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_SQLiteInMemory(t *testing.T) {
	cfg := Config{Driver: "sqlite", Name: ":memory:"}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// Round-trip a trivial statement to prove the handle works.
	err = db.Exec("CREATE TABLE ping (id INTEGER PRIMARY KEY)").Error
	assert.NoError(t, err)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := Config{Driver: "oracle"}
	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
