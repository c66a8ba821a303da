package vision

import (
	"context"
	"errors"
	"fmt"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher clears deleted image URLs out of the current vision version.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the vision patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindVision }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion clears the ecosystem image and any zone imageUrl that
// equals the deleted URL. Only the current version is patched; zones
// keep their order and every other field.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	var row Content
	err := p.db.WithContext(ctx).Order("created_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	changed := false

	if row.EcosystemImageURL != nil && *row.EcosystemImageURL == m.URL {
		row.EcosystemImageURL = nil
		changed = true
	}

	zones, err := row.ZoneList()
	if err != nil {
		return false, fmt.Errorf("vision %s: %w: %v", row.ID, reconcile.ErrMalformedStoredValue, err)
	}
	for i := range zones {
		if zones[i].ImageURL == m.URL {
			zones[i].ImageURL = ""
			changed = true
		}
	}

	if !changed {
		return false, nil
	}
	if err := row.SetZones(zones); err != nil {
		return false, err
	}
	err = p.db.WithContext(ctx).Model(&Content{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"zones":               row.Zones,
			"ecosystem_image_url": row.EcosystemImageURL,
		}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
