package vision

import (
	"context"
	"testing"
	"time"

	"farm-cms/core/database"
	"farm-cms/core/reconcile"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&Content{}))
	return db
}

func createVersion(t *testing.T, db *gorm.DB, zones []Zone, eco *string, at time.Time) Content {
	t.Helper()
	row := Content{Title: "vision", EcosystemImageURL: eco, CreatedAt: at}
	assert.NoError(t, row.SetZones(zones))
	assert.NoError(t, db.Create(&row).Error)
	return row
}

func strPtr(s string) *string { return &s }

func TestPatchDeletion_ClearsOnlyMatchingZone(t *testing.T) {
	db := setupDB(t)
	zones := []Zone{
		{Name: "orchard", Title: "The Orchard", Description: []string{"fruit trees"}, Tags: []string{"trees"}, ImageURL: "https://cdn.example/orchard.jpg"},
		{Name: "pond", Title: "The Pond", Description: []string{"ducks live here"}, Tags: []string{"water"}, ImageURL: "https://cdn.example/pond.jpg"},
		{Name: "barn", Title: "The Barn", ImageURL: "https://cdn.example/barn.jpg"},
	}
	row := createVersion(t, db, zones, nil, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/pond.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Content
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	out, err := got.ZoneList()
	assert.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, "https://cdn.example/orchard.jpg", out[0].ImageURL)
	assert.Equal(t, "", out[1].ImageURL)
	assert.Equal(t, "https://cdn.example/barn.jpg", out[2].ImageURL)
	// Every other field survives the round trip.
	assert.Equal(t, "pond", out[1].Name)
	assert.Equal(t, "The Pond", out[1].Title)
	assert.Equal(t, []string{"ducks live here"}, out[1].Description)
	assert.Equal(t, []string{"water"}, out[1].Tags)
}

func TestPatchDeletion_ClearsEcosystemImage(t *testing.T) {
	db := setupDB(t)
	row := createVersion(t, db, nil, strPtr("https://cdn.example/eco.svg"), time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/eco.svg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var got Content
	assert.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	assert.Nil(t, got.EcosystemImageURL)
}

func TestPatchDeletion_OnlyCurrentVersionPatched(t *testing.T) {
	db := setupDB(t)
	old := createVersion(t, db, []Zone{{Name: "a", ImageURL: "https://cdn.example/z.jpg"}}, nil, time.Now().Add(-time.Hour))
	cur := createVersion(t, db, []Zone{{Name: "a", ImageURL: "https://cdn.example/z.jpg"}}, nil, time.Now())
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/z.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)

	var gotOld, gotCur Content
	assert.NoError(t, db.First(&gotOld, "id = ?", old.ID).Error)
	assert.NoError(t, db.First(&gotCur, "id = ?", cur.ID).Error)

	oldZones, err := gotOld.ZoneList()
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example/z.jpg", oldZones[0].ImageURL)

	curZones, err := gotCur.ZoneList()
	assert.NoError(t, err)
	assert.Equal(t, "", curZones[0].ImageURL)
}

func TestPatchDeletion_NoContentIsSuccess(t *testing.T) {
	db := setupDB(t)
	p := NewPatcher(db)

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/x.jpg"})
	assert.NoError(t, err)
	assert.False(t, touched)
}

func TestPatchDeletion_Idempotent(t *testing.T) {
	db := setupDB(t)
	createVersion(t, db, []Zone{{Name: "a", ImageURL: "https://cdn.example/a.jpg"}}, nil, time.Now())
	p := NewPatcher(db)
	m := reconcile.Media{URL: "https://cdn.example/a.jpg"}

	touched, err := p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.True(t, touched)

	touched, err = p.PatchDeletion(context.Background(), m)
	assert.NoError(t, err)
	assert.False(t, touched)
}
