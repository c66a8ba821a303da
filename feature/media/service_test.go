package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"farm-cms/core/reconcile"
	"farm-cms/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *mocks.Client, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	client := new(mocks.Client)
	engine := reconcile.NewEngine(NewStore(db), zap.NewNop())
	svc := NewService(db, client, "farm-media", "http://localhost:9000", engine, zap.NewNop())
	return svc, client, db
}

func TestUpload_StoresBlobAndRecord(t *testing.T) {
	svc, client, db := setupService(t)
	client.On("PutObject", mock.Anything, "farm-media", mock.Anything, mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	item, err := svc.Upload(context.Background(), strings.NewReader("data"), "Cow.JPG", "image/jpeg", 4, "animals", "")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.URL, "http://localhost:9000/farm-media/animals/"))
	assert.True(t, strings.HasSuffix(item.URL, ".jpg"))

	var count int64
	assert.NoError(t, db.Model(&Item{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	client.AssertExpectations(t)
}

func TestUpload_FailedInsertRollsBackBlob(t *testing.T) {
	svc, client, db := setupService(t)
	client.On("PutObject", mock.Anything, "farm-media", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("RemoveObject", mock.Anything, "farm-media", mock.Anything, mock.Anything).
		Return(nil)

	// Force the insert to fail after the blob is already stored.
	assert.NoError(t, db.Migrator().DropTable(&Item{}))

	_, err := svc.Upload(context.Background(), strings.NewReader("data"), "a.jpg", "image/jpeg", 4, "general", "")
	assert.Error(t, err)
	client.AssertCalled(t, "RemoveObject", mock.Anything, "farm-media", mock.Anything, mock.Anything)
}

func TestOpen_StreamsBlobWithRecord(t *testing.T) {
	svc, client, db := setupService(t)
	item := createItem(t, db, "http://localhost:9000/farm-media/general/pic.jpg")
	client.On("GetObject", mock.Anything, "farm-media", "general/pic.jpg", mock.Anything).
		Return(io.NopCloser(strings.NewReader("bytes")), nil)

	got, rc, err := svc.Open(context.Background(), item.ID)
	assert.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, item.URL, got.URL)

	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
	client.AssertExpectations(t)
}

func TestOpen_ForeignURLRejected(t *testing.T) {
	svc, _, db := setupService(t)
	item := createItem(t, db, "https://elsewhere.example/pic.jpg")

	_, _, err := svc.Open(context.Background(), item.ID)
	assert.Error(t, err)
}

func TestDelete_RemovesBlobAndRecord(t *testing.T) {
	svc, client, db := setupService(t)
	item := createItem(t, db, "http://localhost:9000/farm-media/general/pic.jpg")
	client.On("RemoveObject", mock.Anything, "farm-media", "general/pic.jpg", mock.Anything).
		Return(nil)

	report, err := svc.Delete(context.Background(), item.ID)
	assert.NoError(t, err)
	assert.True(t, report.BlobDeleted)
	assert.Equal(t, item.URL, report.URL)

	var count int64
	assert.NoError(t, db.Model(&Item{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	client.AssertExpectations(t)
}

func TestDelete_BlobFailureStillRemovesRecord(t *testing.T) {
	svc, client, db := setupService(t)
	item := createItem(t, db, "http://localhost:9000/farm-media/general/pic.jpg")
	client.On("RemoveObject", mock.Anything, "farm-media", "general/pic.jpg", mock.Anything).
		Return(errors.New("connection refused"))

	report, err := svc.Delete(context.Background(), item.ID)
	assert.NoError(t, err)
	assert.False(t, report.BlobDeleted)

	var count int64
	assert.NoError(t, db.Model(&Item{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "general/pic.jpg",
		ObjectKey("http://localhost:9000", "farm-media", "http://localhost:9000/farm-media/general/pic.jpg"))
	assert.Equal(t, "general/pic.jpg",
		ObjectKey("https://cdn.example", "farm-media", "http://other-host/farm-media/general/pic.jpg"))
	assert.Equal(t, "",
		ObjectKey("http://localhost:9000", "farm-media", "https://elsewhere.example/pic.jpg"))
}
