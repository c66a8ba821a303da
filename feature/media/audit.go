package media

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

// auditTTL bounds how often the full bucket listing is rebuilt.
const auditTTL = time.Minute

// AuditReport compares the media table against the bucket contents.
// URL-joined entity references are repaired at deletion time; this
// report surfaces the drift reconciliation cannot see: blobs and rows
// that lost their counterpart.
type AuditReport struct {
	// CheckedAt is when the underlying indices were built.
	CheckedAt time.Time `json:"checked_at"`

	// MediaCount is the number of media records examined.
	MediaCount int `json:"media_count"`

	// ObjectCount is the number of bucket objects examined.
	ObjectCount int `json:"object_count"`

	// MissingBlobs lists media URLs whose bucket object is gone.
	MissingBlobs []string `json:"missing_blobs"`

	// OrphanObjects lists bucket keys with no media record.
	OrphanObjects []string `json:"orphan_objects"`
}

// auditCache holds the last report behind a TTL, with singleflight
// guarding concurrent rebuilds.
type auditCache struct {
	mu     sync.RWMutex
	report *AuditReport
	sf     singleflight.Group
	svc    *Service
}

func newAuditCache(svc *Service) *auditCache {
	return &auditCache{svc: svc}
}

// Audit returns the current consistency report, rebuilding it when the
// cached one has expired.
func (s *Service) Audit(ctx context.Context) (*AuditReport, error) {
	return s.audit.get(ctx)
}

func (c *auditCache) get(ctx context.Context) (*AuditReport, error) {
	c.mu.RLock()
	cached := c.report
	c.mu.RUnlock()

	if cached != nil && time.Since(cached.CheckedAt) < auditTTL {
		return cached, nil
	}

	result, err, _ := c.sf.Do("audit", func() (any, error) {
		// Double-check after winning the flight.
		c.mu.RLock()
		cached := c.report
		c.mu.RUnlock()
		if cached != nil && time.Since(cached.CheckedAt) < auditTTL {
			return cached, nil
		}

		report, err := c.svc.buildAudit(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.report = report
		c.mu.Unlock()
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*AuditReport), nil
}

// buildAudit loads the media index and the bucket listing concurrently
// and diffs them by object key.
func (s *Service) buildAudit(ctx context.Context) (*AuditReport, error) {
	var (
		urlByKey   map[string]string
		objectKeys map[string]struct{}
		dbErr      error
		listErr    error
		wg         sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		var items []Item
		if err := s.db.WithContext(ctx).Select("url").Find(&items).Error; err != nil {
			dbErr = err
			return
		}
		urlByKey = make(map[string]string, len(items))
		for i := range items {
			if key := s.objectKey(items[i].URL); key != "" {
				urlByKey[key] = items[i].URL
			}
		}
	}()

	go func() {
		defer wg.Done()
		objectKeys = make(map[string]struct{})
		// Keep draining after an error so the producer is never left
		// blocked on the channel.
		for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				if listErr == nil {
					listErr = obj.Err
				}
				continue
			}
			objectKeys[obj.Key] = struct{}{}
		}
	}()

	wg.Wait()

	if dbErr != nil {
		return nil, dbErr
	}
	if listErr != nil {
		return nil, listErr
	}

	report := &AuditReport{
		CheckedAt:     time.Now(),
		MediaCount:    len(urlByKey),
		ObjectCount:   len(objectKeys),
		MissingBlobs:  []string{},
		OrphanObjects: []string{},
	}
	for key, url := range urlByKey {
		if _, ok := objectKeys[key]; !ok {
			report.MissingBlobs = append(report.MissingBlobs, url)
		}
	}
	for key := range objectKeys {
		if _, ok := urlByKey[key]; !ok {
			report.OrphanObjects = append(report.OrphanObjects, key)
		}
	}
	sort.Strings(report.MissingBlobs)
	sort.Strings(report.OrphanObjects)
	return report, nil
}
