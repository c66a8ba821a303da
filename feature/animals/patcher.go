package animals

import (
	"context"
	"fmt"

	"farm-cms/core/reconcile"
	"farm-cms/core/stringlist"

	"gorm.io/gorm"
)

// Patcher repairs animal photo lists when a media item is deleted.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the animals patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindAnimal }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion removes the URL from every animal whose photo list
// contains it; unparseable rows are skipped and reported without
// blocking the rest.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	var rows []Animal
	pattern := reconcile.LikeContains(m.URL)
	if err := p.db.WithContext(ctx).
		Where("photo_urls LIKE ? ESCAPE '!'", pattern).
		Find(&rows).Error; err != nil {
		return false, err
	}

	touched := false
	var firstErr error
	for i := range rows {
		photos, err := rows[i].Photos()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("animal %s: %w: %v", rows[i].ID, reconcile.ErrMalformedStoredValue, err)
			}
			continue
		}
		filtered := stringlist.Remove(photos, m.URL)
		if len(filtered) == len(photos) {
			continue
		}
		err = p.db.WithContext(ctx).Model(&Animal{}).
			Where("id = ?", rows[i].ID).
			Update("photo_urls", stringlist.Encode(filtered)).Error
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("animal %s: %w", rows[i].ID, err)
			}
			continue
		}
		touched = true
	}
	return touched, firstErr
}
