package experiences

import (
	"context"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher clears experience images when their media item is deleted.
type Patcher struct {
	db *gorm.DB
}

func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindExperience }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	res := p.db.WithContext(ctx).Model(&Experience{}).
		Where("image_url = ?", m.URL).
		Update("image_url", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
