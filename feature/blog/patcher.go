package blog

import (
	"context"
	"fmt"

	"farm-cms/core/htmlimg"
	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Patcher repairs blog posts when a media item is deleted: the featured
// image is cleared and embedded <img> tags are cut out of the content.
type Patcher struct {
	db *gorm.DB
}

// NewPatcher creates the blog patcher.
func NewPatcher(db *gorm.DB) *Patcher {
	return &Patcher{db: db}
}

func (p *Patcher) Kind() reconcile.EntityKind { return reconcile.KindBlogPost }

func (p *Patcher) Applies(reconcile.Media) bool { return true }

// PatchDeletion clears matching featured images, then performs literal
// tag surgery on every post whose content mentions the URL. The two
// halves are independent; a failure in one is reported after the other
// has run.
func (p *Patcher) PatchDeletion(ctx context.Context, m reconcile.Media) (bool, error) {
	touched := false
	var firstErr error

	res := p.db.WithContext(ctx).Model(&Post{}).
		Where("featured_image = ?", m.URL).
		Update("featured_image", nil)
	if res.Error != nil {
		firstErr = fmt.Errorf("featured image: %w", res.Error)
	} else if res.RowsAffected > 0 {
		touched = true
	}

	var rows []Post
	pattern := reconcile.LikeContains(m.URL)
	if err := p.db.WithContext(ctx).
		Where("content LIKE ? ESCAPE '!'", pattern).
		Find(&rows).Error; err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("content scan: %w", err)
		}
		return touched, firstErr
	}

	for i := range rows {
		repaired := htmlimg.RemoveTag(rows[i].Content, m.URL)
		if repaired == rows[i].Content {
			// URL appears outside an <img> tag (plain link); leave it.
			continue
		}
		err := p.db.WithContext(ctx).Model(&Post{}).
			Where("id = ?", rows[i].ID).
			Update("content", repaired).Error
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("post %s: %w", rows[i].ID, err)
			}
			continue
		}
		touched = true
	}
	return touched, firstErr
}
