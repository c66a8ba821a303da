package team

import (
	"context"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher clears team portraits when their media item is deleted.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the team patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindTeamMember }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion clears photo_url on every member whose portrait is the
// deleted URL. A single UPDATE covers all matches and is naturally
// idempotent.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	res := p.db.WithContext(ctx).Model(&Member{}).
		Where("photo_url = ?", m.URL).
		Update("photo_url", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
