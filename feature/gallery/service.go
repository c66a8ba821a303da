package gallery

import (
	"context"

	"farm-cms/core/storage"
	"farm-cms/feature/media"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages gallery albums and their images, keeping the
// denormalized album fields in step with the child rows.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewService creates a gallery service.
func NewService(db *gorm.DB, client storage.Client, bucket, baseURL string, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, bucket: bucket, baseURL: baseURL, logger: logger}
}

// ListAlbums returns all albums, newest first.
func (s *Service) ListAlbums(ctx context.Context) ([]Album, error) {
	var rows []Album
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error) {
	var row Album
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListImages returns an album's images in display order.
func (s *Service) ListImages(ctx context.Context, albumID uuid.UUID) ([]Image, error) {
	var rows []Image
	err := s.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("sort_order ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) CreateAlbum(ctx context.Context, req AlbumRequest) (*Album, error) {
	row := Album{Title: req.Title, Slug: req.Slug, Description: req.Description}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) UpdateAlbum(ctx context.Context, id uuid.UUID, req AlbumRequest) (*Album, error) {
	row, err := s.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = req.Title
	row.Slug = req.Slug
	row.Description = req.Description
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// AddImage appends an image to an album and refreshes count and cover.
func (s *Service) AddImage(ctx context.Context, albumID uuid.UUID, req ImageRequest) (*Image, error) {
	if _, err := s.GetAlbum(ctx, albumID); err != nil {
		return nil, err
	}
	row := Image{AlbumID: albumID, URL: req.URL, Caption: req.Caption, SortOrder: req.SortOrder}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	if err := s.refreshAlbum(ctx, albumID); err != nil {
		return nil, err
	}
	return &row, nil
}

// RemoveImage deletes one image row and refreshes count and cover. The
// blob and media record stay; the image may appear in other albums.
func (s *Service) RemoveImage(ctx context.Context, albumID, imageID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Image{}, "id = ? AND album_id = ?", imageID, albumID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return s.refreshAlbum(ctx, albumID)
}

// DeleteAlbum removes the album and cascades to its images: every
// child row, its blob, and its media record go with it.
func (s *Service) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	images, err := s.ListImages(ctx, id)
	if err != nil {
		return err
	}

	if len(images) > 0 {
		s.removeBlobs(ctx, images)
		urls := make([]string, 0, len(images))
		for i := range images {
			urls = append(urls, images[i].URL)
		}
		if err := s.db.WithContext(ctx).Delete(&media.Item{}, "url IN ?", urls).Error; err != nil {
			s.logger.Warn("album cascade left media rows behind",
				zap.String("album_id", id.String()),
				zap.Error(err),
			)
		}
		if err := s.db.WithContext(ctx).Delete(&Image{}, "album_id = ?", id).Error; err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Delete(&Album{}, "id = ?", id).Error
}

// removeBlobs batch-deletes the images' objects. Failures are logged;
// an orphaned blob never blocks the album delete.
func (s *Service) removeBlobs(ctx context.Context, images []Image) {
	objects := make(chan minio.ObjectInfo, len(images))
	for i := range images {
		if key := media.ObjectKey(s.baseURL, s.bucket, images[i].URL); key != "" {
			objects <- minio.ObjectInfo{Key: key}
		}
	}
	close(objects)

	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		s.logger.Warn("album cascade blob delete failed",
			zap.String("key", rmErr.ObjectName),
			zap.Error(rmErr.Err),
		)
	}
}

// refreshAlbum recomputes image_count and, when unset or dangling, the
// cover from the child rows.
func (s *Service) refreshAlbum(ctx context.Context, albumID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Image{}).Where("album_id = ?", albumID).Count(&count).Error; err != nil {
		return err
	}

	album, err := s.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	cover := album.CoverImageURL
	first, err := firstImage(s.db.WithContext(ctx), albumID.String())
	if err != nil {
		return err
	}
	switch {
	case first == nil:
		cover = nil
	case cover == nil:
		cover = &first.URL
	default:
		// Keep a still-valid cover; replace a dangling one.
		var n int64
		err := s.db.WithContext(ctx).Model(&Image{}).
			Where("album_id = ? AND url = ?", albumID, *cover).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n == 0 {
			cover = &first.URL
		}
	}

	return s.db.WithContext(ctx).Model(&Album{}).
		Where("id = ?", albumID).
		Updates(map[string]any{
			"image_count":     count,
			"cover_image_url": cover,
		}).Error
}
