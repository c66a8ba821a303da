package gallery

import (
	"context"
	"testing"
	"time"

	"farm-cms/core/database"
	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&Album{}, &Image{}))
	return db
}

func createAlbum(t *testing.T, db *gorm.DB, slug string, cover *string, count int) Album {
	t.Helper()
	row := Album{Title: slug, Slug: slug, CoverImageURL: cover, ImageCount: count}
	assert.NoError(t, db.Create(&row).Error)
	return row
}

func createImage(t *testing.T, db *gorm.DB, albumID uuid.UUID, url string, sortOrder int, at time.Time) Image {
	t.Helper()
	row := Image{AlbumID: albumID, URL: url, SortOrder: sortOrder, CreatedAt: at}
	assert.NoError(t, db.Create(&row).Error)
	return row
}

func strPtr(s string) *string { return &s }

func TestPatchDeletion_ReassignsCoverAndDecrementsCount(t *testing.T) {
	db := setupDB(t)
	album := createAlbum(t, db, "seasons", strPtr("https://cdn.example/img1.jpg"), 2)
	createImage(t, db, album.ID, "https://cdn.example/img1.jpg", 0, time.Now().Add(-time.Minute))
	createImage(t, db, album.ID, "https://cdn.example/img2.jpg", 1, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/img1.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Album
	assert.NoError(t, db.First(&got, "id = ?", album.ID).Error)
	assert.Equal(t, 1, got.ImageCount)
	assert.NotNil(t, got.CoverImageURL)
	assert.Equal(t, "https://cdn.example/img2.jpg", *got.CoverImageURL)

	var remaining int64
	assert.NoError(t, db.Model(&Image{}).Where("album_id = ?", album.ID).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}

func TestPatchDeletion_CoverPicksLowestSortOrderThenOldest(t *testing.T) {
	db := setupDB(t)
	album := createAlbum(t, db, "ordering", strPtr("https://cdn.example/gone.jpg"), 3)
	base := time.Now()
	createImage(t, db, album.ID, "https://cdn.example/gone.jpg", 0, base.Add(-3*time.Minute))
	createImage(t, db, album.ID, "https://cdn.example/late.jpg", 1, base.Add(-time.Minute))
	createImage(t, db, album.ID, "https://cdn.example/early.jpg", 1, base.Add(-2*time.Minute))
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/gone.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Album
	assert.NoError(t, db.First(&got, "id = ?", album.ID).Error)
	// Ties on sort_order fall back to creation time.
	assert.Equal(t, "https://cdn.example/early.jpg", *got.CoverImageURL)
}

func TestPatchDeletion_LastImageClearsCover(t *testing.T) {
	db := setupDB(t)
	album := createAlbum(t, db, "single", strPtr("https://cdn.example/only.jpg"), 1)
	createImage(t, db, album.ID, "https://cdn.example/only.jpg", 0, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/only.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Album
	assert.NoError(t, db.First(&got, "id = ?", album.ID).Error)
	assert.Equal(t, 0, got.ImageCount)
	assert.Nil(t, got.CoverImageURL)
}

func TestPatchDeletion_CountNeverGoesNegative(t *testing.T) {
	db := setupDB(t)
	// Drifted denormalization: count says 0 but a child row exists.
	album := createAlbum(t, db, "drift", nil, 0)
	createImage(t, db, album.ID, "https://cdn.example/x.jpg", 0, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/x.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Album
	assert.NoError(t, db.First(&got, "id = ?", album.ID).Error)
	assert.Equal(t, 0, got.ImageCount)
}

func TestPatchDeletion_StrayCoverWithoutChildRow(t *testing.T) {
	db := setupDB(t)
	album := createAlbum(t, db, "stray", strPtr("https://cdn.example/stray.jpg"), 0)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/stray.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Album
	assert.NoError(t, db.First(&got, "id = ?", album.ID).Error)
	assert.Nil(t, got.CoverImageURL)
}

func TestPatchDeletion_URLInMultipleAlbums(t *testing.T) {
	db := setupDB(t)
	a := createAlbum(t, db, "a", nil, 1)
	b := createAlbum(t, db, "b", nil, 2)
	createImage(t, db, a.ID, "https://cdn.example/shared.jpg", 0, time.Now())
	createImage(t, db, b.ID, "https://cdn.example/shared.jpg", 0, time.Now())
	createImage(t, db, b.ID, "https://cdn.example/other.jpg", 1, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/shared.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var gotA, gotB Album
	assert.NoError(t, db.First(&gotA, "id = ?", a.ID).Error)
	assert.NoError(t, db.First(&gotB, "id = ?", b.ID).Error)
	assert.Equal(t, 0, gotA.ImageCount)
	assert.Equal(t, 1, gotB.ImageCount)
}

func TestPatchDeletion_Idempotent(t *testing.T) {
	db := setupDB(t)
	album := createAlbum(t, db, "twice", strPtr("https://cdn.example/a.jpg"), 1)
	createImage(t, db, album.ID, "https://cdn.example/a.jpg", 0, time.Now())
	p := NewPatcher(db)
	m := reconcile.Media{URL: "https://cdn.example/a.jpg"}

	touched, err := p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.True(t, touched)

	touched, err = p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.False(t, touched)
}
