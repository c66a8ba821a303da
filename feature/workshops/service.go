package workshops

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles workshop CRUD. Workshop images join the media
// library by URL; there is no linkage to maintain here.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a workshop service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Workshop, error) {
	var rows []Workshop
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Workshop, error) {
	var row Workshop
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Workshop, error) {
	row := Workshop{
		Title:       req.Title,
		Description: req.Description,
		Facilitator: req.Facilitator,
		Price:       req.Price,
		Dates:       req.Dates,
		ImageURL:    req.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Workshop, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = req.Title
	row.Description = req.Description
	row.Facilitator = req.Facilitator
	row.Price = req.Price
	row.Dates = req.Dates
	row.ImageURL = req.ImageURL
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&Workshop{}, "id = ?", id).Error
}
