package stays

import (
	"context"
	"fmt"

	"farm-cms/core/reconcile"
	"farm-cms/core/stringlist"

	"gorm.io/gorm"
)

// Patcher repairs stay image lists when a media item is deleted.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the stays patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

// Kind returns the entity kind this patcher maintains.
func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindAccommodation }

// Applies always returns true: the URL is the join key, and rows may
// reference it without the media linkage ever having been back-filled.
func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion removes the URL from every stay whose image list
// contains it. Multiple matching rows are all patched. A row whose
// stored value cannot be parsed is skipped and reported; the remaining
// rows are still patched.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	var rows []Stay
	pattern := reconcile.LikeContains(m.URL)
	if err := p.db.WithContext(ctx).
		Where("image_urls LIKE ? ESCAPE '!'", pattern).
		Find(&rows).Error; err != nil {
		return false, err
	}

	touched := false
	var firstErr error
	for i := range rows {
		images, err := rows[i].Images()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("stay %s: %w: %v", rows[i].ID, reconcile.ErrMalformedStoredValue, err)
			}
			continue
		}
		filtered := stringlist.Remove(images, m.URL)
		if len(filtered) == len(images) {
			// LIKE matched a substring of a longer URL; no exact entry.
			continue
		}
		err = p.db.WithContext(ctx).Model(&Stay{}).
			Where("id = ?", rows[i].ID).
			Update("image_urls", stringlist.Encode(filtered)).Error
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("stay %s: %w", rows[i].ID, err)
			}
			continue
		}
		touched = true
	}
	return touched, firstErr
}
