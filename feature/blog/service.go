package blog

import (
	"context"
	"time"

	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles blog CRUD and keeps media linkage aligned with the
// images embedded in post content.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a blog service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, logger: logger}
}

// List returns posts, optionally only published ones, newest first.
func (s *Service) List(ctx context.Context, publishedOnly bool) ([]Post, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var rows []Post
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	var row Post
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetBySlug returns a post by its slug, for the public site.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var row Post
	if err := s.db.WithContext(ctx).First(&row, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Post, error) {
	row := Post{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Content:       req.Content,
		Tags:          req.Tags,
		Published:     req.Published,
	}
	if req.Published {
		now := time.Now()
		row.PublishedAt = &now
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	s.syncContentLinks(ctx, row.ID, row.Content)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Post, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = req.Title
	row.Slug = req.Slug
	row.Excerpt = req.Excerpt
	row.FeaturedImage = req.FeaturedImage
	row.Content = req.Content
	row.Tags = req.Tags
	if req.Published && !row.Published {
		now := time.Now()
		row.PublishedAt = &now
	}
	row.Published = req.Published
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	s.syncContentLinks(ctx, row.ID, row.Content)
	return row, nil
}

// Delete removes a post and unlinks every media item that pointed at it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&Post{}, "id = ?", id).Error; err != nil {
		return err
	}
	// Empty content: the unlink half prunes everything.
	s.syncContentLinks(ctx, id, "")
	return nil
}

func (s *Service) syncContentLinks(ctx context.Context, id uuid.UUID, html string) {
	if err := s.engine.ReconcileContentLinks(ctx, id.String(), html); err != nil {
		s.logger.Warn("blog content link sync failed",
			zap.String("post_id", id.String()),
			zap.Error(err),
		)
	}
}
