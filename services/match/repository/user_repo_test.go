package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockRepo opens gorm the way db.ConnectMySQL does, on top of sqlmock.
func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return NewUserRepository(gdb), mock
}

const (
	insertLikeSQL    = "INSERT INTO `likes`"
	insertDislikeSQL = "INSERT INTO `dislikes`"
	reverseLikeSQL   = "SELECT count\\(\\*\\) FROM `likes` WHERE .*actor_id = \\? AND target_id = \\?.* FOR SHARE"
)

func duplicateKey() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'PRIMARY'"}
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestUserRepository_InsertLike(t *testing.T) {
	repo, mock := newMockRepo(t)

	// only the edge row is written, never the associated users
	mock.ExpectBegin()
	mock.ExpectExec(insertLikeSQL).WithArgs(1, 2, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reverseLikeSQL).WithArgs(2, 1).WillReturnRows(countRows(0))
	mock.ExpectCommit()

	matched, err := repo.InsertLike(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_InsertLike_ReverseEdgeMatches(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertLikeSQL).WithArgs(2, 1, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reverseLikeSQL).WithArgs(1, 2).WillReturnRows(countRows(1))
	mock.ExpectCommit()

	matched, err := repo.InsertLike(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_InsertLike_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertLikeSQL).WillReturnError(duplicateKey())
	mock.ExpectRollback()

	_, err := repo.InsertLike(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_InsertLike_RetriesDeadlock(t *testing.T) {
	repo, mock := newMockRepo(t)

	// first attempt loses the deadlock against the concurrent reverse like
	mock.ExpectBegin()
	mock.ExpectExec(insertLikeSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reverseLikeSQL).WillReturnError(&mysql.MySQLError{Number: mysqlErrDeadlock, Message: "Deadlock found"})
	mock.ExpectRollback()

	// the retry sees the committed reverse edge
	mock.ExpectBegin()
	mock.ExpectExec(insertLikeSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(reverseLikeSQL).WillReturnRows(countRows(1))
	mock.ExpectCommit()

	matched, err := repo.InsertLike(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_InsertDislike(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertDislikeSQL).WithArgs(1, 3, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.InsertDislike(context.Background(), 1, 3))

	mock.ExpectBegin()
	mock.ExpectExec(insertDislikeSQL).WillReturnError(duplicateKey())
	mock.ExpectRollback()
	assert.ErrorIs(t, repo.InsertDislike(context.Background(), 1, 3), ErrAlreadyRecorded)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsersUpdatedSince(t *testing.T) {
	repo, mock := newMockRepo(t)
	since := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE updated_at >= \\? ORDER BY id ASC").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location", "radius"}).
			AddRow(4, 10001, 50).
			AddRow(7, 10002, 25))

	users, err := repo.ListUsersUpdatedSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint(4), users[0].ID)
	assert.Equal(t, 25, users[1].Radius)
	assert.NoError(t, mock.ExpectationsWereMet())
}
