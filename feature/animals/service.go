package animals

import (
	"context"

	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles animal CRUD and photo-link maintenance.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates an animals service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	var rows []Animal
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Animal, error) {
	var row Animal
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Animal, error) {
	row := Animal{
		Name:    req.Name,
		Species: req.Species,
		Bio:     req.Bio,
	}
	row.SetPhotos(req.PhotoURLs)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	s.syncLinks(ctx, row.ID, req.PhotoURLs)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Animal, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Name = req.Name
	row.Species = req.Species
	row.Bio = req.Bio
	row.SetPhotos(req.PhotoURLs)
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	s.syncLinks(ctx, row.ID, req.PhotoURLs)
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&Animal{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.syncLinks(ctx, row.ID, nil)
	return nil
}

func (s *Service) syncLinks(ctx context.Context, id uuid.UUID, urls []string) {
	if err := s.engine.SyncURLArrayLinks(ctx, id.String(), reconcile.KindAnimal, urls); err != nil {
		s.logger.Warn("animal media link sync failed",
			zap.String("animal_id", id.String()),
			zap.Error(err),
		)
	}
}
