package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/smartmeet/internal/common"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*full_name,\s*password_hash,\s*is_active\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at$`
	selectQuery = `(?s)^SELECT\s+id,\s*email,\s*full_name,\s*password_hash,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs("a@b.com", "A", []byte("hash"), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("42", created))

	got, err := repo.Create(context.Background(), &User{Email: "A@B.com", FullName: "A", PasswordHash: []byte("hash"), IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, created, got.CreatedAt)
}

func TestPostgresCreate_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).
		WithArgs("a@b.com", "A", []byte("hash"), true).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), &User{Email: "a@b.com", FullName: "A", PasswordHash: []byte("hash"), IsActive: true})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &User{Email: "a@b.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestPostgresGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectQuery).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "is_active", "created_at"}).
			AddRow("u-1", "a@b.com", "A", []byte("hash"), true, created))

	got, err := repo.GetByEmail(context.Background(), "A@b.com")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "u-1", Email: "a@b.com", FullName: "A", PasswordHash: []byte("hash"), IsActive: true, CreatedAt: created}, got)
}

func TestPostgresGetByEmail_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("nobody@b.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(selectQuery).WithArgs("a@b.com").WillReturnError(errors.New("timeout"))

	_, err := repo.GetByEmail(context.Background(), "nobody@b.com")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByEmail(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
