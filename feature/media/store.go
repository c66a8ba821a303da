package media

import (
	"context"
	"errors"
	"fmt"

	"farm-cms/core/reconcile"

	"gorm.io/gorm"
)

// Store is the GORM-backed media repository. It implements
// reconcile.MediaStore for the engine's link maintenance.
type Store struct {
	db *gorm.DB
}

// NewStore creates a media store over the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByURL returns the media item with the given URL, matched
// case-insensitively, or nil when none exists.
func (s *Store) FindByURL(ctx context.Context, url string) (*reconcile.Media, error) {
	var item Item
	err := s.db.WithContext(ctx).Where("lower(url) = lower(?)", url).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := item.ToEngine()
	return &m, nil
}

// FindLinked returns every media item linked to the given entity.
func (s *Store) FindLinked(ctx context.Context, kind reconcile.EntityKind, entityID string) ([]reconcile.Media, error) {
	column, err := linkColumn(kind)
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := s.db.WithContext(ctx).Where(column+" = ?", entityID).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]reconcile.Media, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToEngine())
	}
	return out, nil
}

// SetLink points a media item's linkage column for kind at entityID.
func (s *Store) SetLink(ctx context.Context, mediaID string, kind reconcile.EntityKind, entityID string) error {
	column, err := linkColumn(kind)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", mediaID).
		Update(column, entityID).Error
}

// ClearLink removes a media item's linkage column for kind.
func (s *Store) ClearLink(ctx context.Context, mediaID string, kind reconcile.EntityKind) error {
	column, err := linkColumn(kind)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", mediaID).
		Update(column, nil).Error
}

func linkColumn(kind reconcile.EntityKind) (string, error) {
	switch kind {
	case reconcile.KindAccommodation:
		return "accommodation_id", nil
	case reconcile.KindAnimal:
		return "animal_id", nil
	case reconcile.KindTeamMember:
		return "team_member_id", nil
	case reconcile.KindBlogPost:
		return "blog_post_id", nil
	default:
		return "", fmt.Errorf("entity kind %s has no linkage column", kind)
	}
}
