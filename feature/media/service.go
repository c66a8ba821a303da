package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"farm-cms/core/reconcile"
	"farm-cms/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles the media library: uploads, listing, and the deletion
// flow that runs reference reconciliation before anything is removed.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	bucket  string
	baseURL string
	engine  *reconcile.Engine
	logger  *zap.Logger
	audit   *auditCache
}

// NewService creates a media service.
func NewService(db *gorm.DB, client storage.Client, bucket, baseURL string, engine *reconcile.Engine, logger *zap.Logger) *Service {
	s := &Service{
		db:      db,
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		engine:  engine,
		logger:  logger,
	}
	s.audit = newAuditCache(s)
	return s
}

// Upload stores the file bytes and creates the media record. The object
// key is namespaced by category (and folder for gallery uploads) with a
// random element so re-uploads never collide.
func (s *Service) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, category, folder string) (*Item, error) {
	if category == "" {
		category = "general"
	}
	key := category
	if folder != "" {
		key = key + "/" + folder
	}
	key = key + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	item := Item{
		URL:         s.baseURL + "/" + s.bucket + "/" + key,
		Filename:    filename,
		Category:    category,
		ContentType: contentType,
		Size:        size,
	}
	if folder != "" {
		item.Folder = &folder
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		// Roll back the blob so a failed insert leaves no orphan.
		_ = s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}
	return &item, nil
}

// List returns media records, optionally filtered by category and folder.
func (s *Service) List(ctx context.Context, category, folder string) ([]Item, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if folder != "" {
		q = q.Where("folder = ?", folder)
	}
	var items []Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns a single media record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete permanently removes a media item: reconciliation patches run
// first, then the blob is removed best-effort, then the record goes.
// The record is removed even when the blob delete fails; an orphaned
// blob is the lesser failure.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*reconcile.Report, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	report := s.engine.ReconcileDeletion(ctx, item.ToEngine())

	if key := s.objectKey(item.URL); key != "" {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("blob delete failed, media record removed anyway",
				zap.String("media_id", item.ID.String()),
				zap.String("key", key),
				zap.Error(fmt.Errorf("%w: %v", reconcile.ErrBlobStoreUnavailable, err)),
			)
		} else {
			report.BlobDeleted = true
		}
	} else {
		s.logger.Warn("media URL outside managed bucket, blob not removed",
			zap.String("media_id", item.ID.String()),
			zap.String("url", item.URL),
		)
	}

	if err := s.db.WithContext(ctx).Delete(&Item{}, "id = ?", id).Error; err != nil {
		return &report, err
	}

	s.logger.Info("media deleted",
		zap.String("media_id", report.MediaID),
		zap.String("url", report.URL),
		zap.Any("touched", report.Touched),
		zap.Any("failures", report.Failures),
		zap.Bool("blob_deleted", report.BlobDeleted),
	)
	return &report, nil
}

// Open returns the media record together with a reader over its blob.
// The caller closes the reader.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*Item, io.ReadCloser, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	key := s.objectKey(item.URL)
	if key == "" {
		return nil, nil, fmt.Errorf("media %s: URL outside managed bucket", item.ID)
	}
	rc, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open object: %w", err)
	}
	return item, rc, nil
}

func (s *Service) objectKey(url string) string {
	return ObjectKey(s.baseURL, s.bucket, url)
}

// ObjectKey recovers the bucket-relative object key from a media URL.
// Returns "" for URLs outside the managed bucket.
func ObjectKey(baseURL, bucket, url string) string {
	prefix := baseURL + "/" + bucket + "/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	if i := strings.Index(url, "/"+bucket+"/"); i >= 0 {
		return url[i+len(bucket)+2:]
	}
	return ""
}
