package team

import (
	"context"

	"farm-cms/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles team member CRUD. Changing a member's portrait also
// moves the media linkage: the old photo is unlinked, the new one
// linked, via the same sync the list-field entities use.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a team service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{db: db, engine: engine, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	var rows []Member
	if err := s.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	var row Member
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*Member, error) {
	row := Member{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		SortOrder: req.SortOrder,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	s.syncPhoto(ctx, row.ID, row.PhotoURL)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req Request) (*Member, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Name = req.Name
	row.Role = req.Role
	row.Bio = req.Bio
	row.PhotoURL = req.PhotoURL
	row.SortOrder = req.SortOrder
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	s.syncPhoto(ctx, row.ID, row.PhotoURL)
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&Member{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.syncPhoto(ctx, id, nil)
	return nil
}

func (s *Service) syncPhoto(ctx context.Context, id uuid.UUID, photoURL *string) {
	var urls []string
	if photoURL != nil && *photoURL != "" {
		urls = []string{*photoURL}
	}
	if err := s.engine.SyncURLArrayLinks(ctx, id.String(), reconcile.KindTeamMember, urls); err != nil {
		s.logger.Warn("team media link sync failed",
			zap.String("member_id", id.String()),
			zap.Error(err),
		)
	}
}
