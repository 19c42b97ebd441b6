// internal/repository/postgres/user_pg_test.go
package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cinelog/internal/domain"
	"cinelog/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "name", "user_name", "password", "reviewed_movies", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user := domain.NewUser("Ann", "ann1", "hash")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID.String(), "Ann", "ann1", "hash", "[]", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateUser(context.Background(), db, user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errors.New("connection reset"))

	err := repo.CreateUser(context.Background(), db, domain.NewUser("Ann", "ann1", "hash"))
	assert.ErrorIs(t, err, util.ErrStore)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetUserByID(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), "Ann", "ann1", "hash", []byte(`[{"movieTitle":"Dune","comment":"great"}]`), now, now))

		user, err := repo.GetUserByID(context.Background(), db, id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "ann1", user.UserName)
		require.Len(t, user.ReviewedMovies, 1)
		assert.Equal(t, "Dune", user.ReviewedMovies[0].MovieTitle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(columns))

		user, err := repo.GetUserByID(context.Background(), db, id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.NotErrorIs(t, err, util.ErrStore)
	})
}

func TestGetUserByUserName_OldestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_name = $1 ORDER BY created_at, id LIMIT 1")).
		WithArgs("ann1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "Ann", "ann1", "hash", []byte(`[]`), now, now))

	user, err := repo.GetUserByUserName(context.Background(), db, "ann1")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendReview_SingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	id := uuid.New()
	review := domain.NewReview("Dune", nil, "great")

	// The append must be one UPDATE ... RETURNING; no prior SELECT is expected.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET reviewed_movies = reviewed_movies || $2::jsonb")).
		WithArgs(id.String(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "Ann", "ann1", "hash", []byte(`[{"movieTitle":"Dune","comment":"great"}]`), now, now))

	user, err := repo.AppendReview(context.Background(), db, id, review)
	require.NoError(t, err)
	require.Len(t, user.ReviewedMovies, 1)
	assert.Equal(t, "great", user.ReviewedMovies[0].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendReview_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET reviewed_movies")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.AppendReview(context.Background(), db, uuid.New(), domain.NewReview("Dune", nil, ""))
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestUpdateUserName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET user_name = $2")).
		WithArgs(id.String(), "ann2").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "Ann", "ann2", "hash", []byte(`[]`), now, now))

	user, err := repo.UpdateUserName(context.Background(), db, id, "ann2")
	require.NoError(t, err)
	assert.Equal(t, "ann2", user.UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	id := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteUser(context.Background(), db, id))
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), db, id), util.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "Ann", "ann1", "h1", []byte(`[]`), now, now).
			AddRow(uuid.NewString(), "Bob", "bob", "h2", nil, now, now))

	users, err := repo.ListUsers(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[1].Name)
	assert.NotNil(t, users[1].ReviewedMovies)
}
