package gallery

import (
	"context"
	"errors"
	"fmt"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher removes gallery images that reference a deleted media item
// and repairs the denormalized album fields they fed.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the gallery patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindGallery }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion deletes every image row with the URL, then fixes each
// affected album: the count drops by the rows removed (never below
// zero) and a matching cover is reassigned to the remaining image with
// the lowest (sort_order, created_at), or cleared when none is left.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	var hits []Image
	if err := p.db.WithContext(ctx).Where("url = ?", m.URL).Find(&hits).Error; err != nil {
		return false, err
	}

	removedPerAlbum := map[string]int{}
	for i := range hits {
		removedPerAlbum[hits[i].AlbumID.String()]++
	}

	touched := false
	var firstErr error

	if len(hits) > 0 {
		if err := p.db.WithContext(ctx).Delete(&Image{}, "url = ?", m.URL).Error; err != nil {
			return false, err
		}
		touched = true
	}

	for albumID, removed := range removedPerAlbum {
		if err := p.repairAlbum(ctx, albumID, removed, m.URL); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	// The cover can reference the URL without a child row (manual edits).
	var strays []Album
	if err := p.db.WithContext(ctx).Where("cover_image_url = ?", m.URL).Find(&strays).Error; err != nil {
		if firstErr == nil {
			firstErr = err
		}
		return touched, firstErr
	}
	for i := range strays {
		if err := p.repairAlbum(ctx, strays[i].ID.String(), 0, m.URL); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		touched = true
	}
	return touched, firstErr
}

func (p *Patcher) repairAlbum(ctx context.Context, albumID string, removed int, url string) error {
	var album Album
	if err := p.db.WithContext(ctx).First(&album, "id = ?", albumID).Error; err != nil {
		return fmt.Errorf("album %s: %w", albumID, err)
	}

	album.ImageCount -= removed
	if album.ImageCount < 0 {
		album.ImageCount = 0
	}

	if album.CoverImageURL != nil && *album.CoverImageURL == url {
		next, err := firstImage(p.db.WithContext(ctx), albumID)
		if err != nil {
			return fmt.Errorf("album %s: %w", albumID, err)
		}
		if next == nil {
			album.CoverImageURL = nil
		} else {
			album.CoverImageURL = &next.URL
		}
	}

	err := p.db.WithContext(ctx).Model(&Album{}).
		Where("id = ?", albumID).
		Updates(map[string]any{
			"image_count":     album.ImageCount,
			"cover_image_url": album.CoverImageURL,
		}).Error
	if err != nil {
		return fmt.Errorf("album %s: %w", albumID, err)
	}
	return nil
}

// firstImage returns the album's leading image by (sort_order,
// created_at), or nil for an empty album.
func firstImage(db *gorm.DB, albumID string) (*Image, error) {
	var img Image
	err := db.Where("album_id = ?", albumID).
		Order("sort_order ASC, created_at ASC").
		First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}
