package workshops

import (
	"context"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher clears workshop images when their media item is deleted.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the workshop patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindWorkshop }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion clears image_url on every workshop showing the deleted
// URL. A single UPDATE covers all matches and is naturally idempotent.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	res := p.db.WithContext(ctx).Model(&Workshop{}).
		Where("image_url = ?", m.URL).
		Update("image_url", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
