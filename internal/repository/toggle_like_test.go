package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for asserting the
// exact statement sequence a method issues.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// The like row and the counter must move inside one transaction; a crash
// between them would otherwise leave the counter out of step with the rows.
func TestToggleLikeOnStatementShape(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPostRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=like_count + 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleLike(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeOffStatementShape(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewPostRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=like_count - 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleLike(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
