package animals

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
	assert.NoError(t, db.AutoMigrate(&Animal{}))
	return db
}

func createAnimal(t *testing.T, db *gorm.DB, name string, rawPhotos *string) Animal {
	t.Helper()
	row := Animal{Name: name, PhotoURLs: rawPhotos}
	assert.NoError(t, db.Create(&row).Error)
	return row
}

func strPtr(s string) *string { return &s }

func TestPatchDeletion_RemovesURLFromPhotoList(t *testing.T) {
	db := setupDB(t)
	row := createAnimal(t, db, "heidi", strPtr(`["a.jpg","b.jpg"]`))
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "a.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Animal
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	photos, err := got.Photos()
	assert.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, photos)
}

func TestPatchDeletion_LastPhotoYieldsNull(t *testing.T) {
	db := setupDB(t)
	row := createAnimal(t, db, "otto", strPtr(`["only.jpg"]`))
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "only.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Animal
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	assert.Nil(t, got.PhotoURLs)
}

func TestPatchDeletion_LegacyFormats(t *testing.T) {
	db := setupDB(t)
	literal := createAnimal(t, db, "literal", strPtr(`{x.jpg,y.jpg}`))
	delimited := createAnimal(t, db, "delimited", strPtr("x.jpg, z.jpg"))
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "x.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Animal
	assert.NoError(t, db.First(&got, "id = ?", literal.ID).Error)
	photos, _ := got.Photos()
	assert.Equal(t, []string{"y.jpg"}, photos)

	got = Animal{}
	assert.NoError(t, db.First(&got, "id = ?", delimited.ID).Error)
	photos, _ = got.Photos()
	assert.Equal(t, []string{"z.jpg"}, photos)
}

func TestPatchDeletion_MalformedRowSkippedOthersPatched(t *testing.T) {
	db := setupDB(t)
	bad := createAnimal(t, db, "bad", strPtr(`["broken.jpg`))
	good := createAnimal(t, db, "good", strPtr(`["broken.jpg","keep.jpg"]`))
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "broken.jpg"})
	assert.Error(t, err)
	assert.True(t, touched)

	var got Animal
	assert.NoError(t, db.First(&got, "id = ?", good.ID).Error)
	photos, _ := got.Photos()
	assert.Equal(t, []string{"keep.jpg"}, photos)

	got = Animal{}
	assert.NoError(t, db.First(&got, "id = ?", bad.ID).Error)
	assert.Equal(t, `["broken.jpg`, *got.PhotoURLs)
}

func TestPatchDeletion_Idempotent(t *testing.T) {
	db := setupDB(t)
	createAnimal(t, db, "twice", strPtr(`["a.jpg","b.jpg"]`))
	p := NewPatcher(db)
	m := reconcile.Media{URL: "a.jpg"}

	touched, err := p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.True(t, touched)

	touched, err = p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.False(t, touched)
}
