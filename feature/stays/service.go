package stays

import (
	"context"

	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles stay CRUD and keeps media linkage in step with the
// image list.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a stays service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, logger: logger}
}

// List returns all stays, newest first.
func (s *Service) List(ctx context.Context) ([]Stay, error) {
	var rows []Stay
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns a single stay.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Stay, error) {
	var row Stay
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create persists a new stay and links its images' media records.
func (s *Service) Create(ctx context.Context, req Request) (*Stay, error) {
	row := Stay{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
	}
	row.SetImages(req.ImageURLs)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	s.syncLinks(ctx, row.ID, req.ImageURLs)
	return &row, nil
}

// Update persists changes and realigns media linkage with the new list.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Stay, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Name = req.Name
	row.Slug = req.Slug
	row.Description = req.Description
	row.PricePerNight = req.PricePerNight
	row.Capacity = req.Capacity
	row.SetImages(req.ImageURLs)
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	s.syncLinks(ctx, row.ID, req.ImageURLs)
	return row, nil
}

// Delete removes a stay and unlinks its media records.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Stay{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.syncLinks(ctx, row.ID, nil)
	return nil
}

// syncLinks aligns media linkage; failure degrades to a log line, the
// content write has already succeeded.
func (s *Service) syncLinks(ctx context.Context, id uuid.UUID, urls []string) {
	if err := s.engine.SyncURLArrayLinks(ctx, id.String(), reconcile.KindAccommodation, urls); err != nil {
		s.logger.Warn("stay media link sync failed",
			zap.String("stay_id", id.String()),
			zap.Error(err),
		)
	}
}
