package vision

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service serves the current vision version and publishes new ones.
// Updates never overwrite; each save is a fresh row so the history
// stays intact. Vision images join the media library by URL, so there
// is no linkage to maintain here.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a vision service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Current returns the most recently published version.
func (s *Service) Current(ctx context.Context) (*Content, error) {
	var row Content
	if err := s.db.WithContext(ctx).Order("created_at DESC").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Publish stores a new version and makes it current.
func (s *Service) Publish(ctx context.Context, req Request) (*Content, error) {
	row := Content{
		Title:             req.Title,
		Intro:             req.Intro,
		EcosystemImageURL: req.EcosystemImageURL,
	}
	zones := req.Zones
	if zones == nil {
		zones = []Zone{}
	}
	if err := row.SetZones(zones); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	s.logger.Info("vision version published", zap.String("vision_id", row.ID.String()))
	return &row, nil
}
