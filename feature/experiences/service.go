package experiences

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles experience CRUD.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Experience, error) {
	var rows []Experience
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Experience, error) {
	var row Experience
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Experience, error) {
	row := Experience{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Experience, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = req.Title
	row.Description = req.Description
	row.Duration = req.Duration
	row.Price = req.Price
	row.ImageURL = req.ImageURL
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&Experience{}, "id = ?", id).Error
}
