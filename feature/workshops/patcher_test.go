package workshops

import (
	"context"
	"testing"

	"farm-cms/core/database"
	"farm-cms/core/reconcile"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&Workshop{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestPatchDeletion_ClearsMatchingImage(t *testing.T) {
	db := setupDB(t)
	row := Workshop{Title: "sourdough", ImageURL: strPtr("https://cdn.example/bread.jpg")}
	assert.NoError(t, db.Create(&row).Error)
	other := Workshop{Title: "weaving", ImageURL: strPtr("https://cdn.example/loom.jpg")}
	assert.NoError(t, db.Create(&other).Error)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/bread.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Workshop
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	assert.Nil(t, got.ImageURL)

	got = Workshop{}
	assert.NoError(t, db.First(&got, "id = ?", other.ID).Error)
	assert.NotNil(t, got.ImageURL)
}

func TestPatchDeletion_NoMatchIsNoOp(t *testing.T) {
	db := setupDB(t)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/none.jpg"})
	assert.NoError(t, err)
	assert.False(t, touched)
}
