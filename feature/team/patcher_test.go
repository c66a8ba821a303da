package team

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"farm-cms/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB so the emitted SQL can be checked.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestPatchDeletion_ClearsPortraitWithSingleUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	p := NewPatcher(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `team_members` SET `photo_url`=?,`updated_at`=? WHERE photo_url = ?")).
		WithArgs(nil, sqlmock.AnyArg(), "https://cdn.example/ann.jpg").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/ann.jpg"})
	assert.NoError(t, err)
	assert.True(t, touched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchDeletion_NoMatchingRows(t *testing.T) {
	db, mock := setupMockDB(t)
	p := NewPatcher(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `team_members`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/none.jpg"})
	assert.NoError(t, err)
	assert.False(t, touched)
}

func TestPatchDeletion_DatabaseErrorSurfaces(t *testing.T) {
	db, mock := setupMockDB(t)
	p := NewPatcher(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `team_members`").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	touched, err := p.PatchDeletion(context.Background(), reconcile.Media{URL: "https://cdn.example/ann.jpg"})
	assert.Error(t, err)
	assert.False(t, touched)
}
