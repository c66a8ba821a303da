package experiences

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
	assert.NoError(t, db.AutoMigrate(&Experience{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestPatchDeletion_ClearsMatchingImage(t *testing.T) {
	db := setupDB(t)
	row := Experience{Title: "forest walk", ImageURL: strPtr("https://cdn.example/forest.jpg")}
	assert.NoError(t, db.Create(&row).Error)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/forest.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Experience
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	assert.Nil(t, got.ImageURL)
}

func TestPatchDeletion_NoMatchIsNoOp(t *testing.T) {
	db := setupDB(t)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/none.jpg"})
	assert.NoError(t, err)
	assert.False(t, touched)
}
