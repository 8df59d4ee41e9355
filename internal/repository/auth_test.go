package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mange/backend/internal/domain"
)

func TestGroupByID(t *testing.T) {
	t.Run("finds existing group", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM groups WHERE id = $1`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(2), "admins"))

		g, err := repos.GroupByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "admins", g.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing group maps to not found", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM groups WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repos.GroupByID(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdateGroup(t *testing.T) {
	t.Run("renames the group", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE groups SET name = $2 WHERE id = $1`)).
			WithArgs(int64(2), "operators").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repos.UpdateGroup(context.Background(), &domain.Group{ID: 2, Name: "operators"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name surfaces as uniqueness violation", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE groups SET name = $2 WHERE id = $1`)).
			WithArgs(int64(2), "admins").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "groups_name_key"})

		err := repos.UpdateGroup(context.Background(), &domain.Group{ID: 2, Name: "admins"})
		assert.ErrorIs(t, err, domain.ErrUniqueness)
	})

	t.Run("missing group maps to not found", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE groups SET name = $2 WHERE id = $1`)).
			WithArgs(int64(99), "ghosts").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repos.UpdateGroup(context.Background(), &domain.Group{ID: 99, Name: "ghosts"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInsertUser(t *testing.T) {
	t.Run("duplicate name surfaces as uniqueness violation", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_name_key"})

		err := repos.InsertUser(context.Background(), &domain.User{Name: "blob"})
		assert.ErrorIs(t, err, domain.ErrUniqueness)
	})
}

func TestReplaceToken(t *testing.T) {
	t.Run("upserts the single token per user", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`INSERT INTO tokens (user_id, value) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET value = EXCLUDED.value RETURNING id`)).
			WithArgs(int64(3), "opaque-value").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

		token, err := repos.ReplaceToken(context.Background(), 3, "opaque-value")
		require.NoError(t, err)
		assert.Equal(t, int64(9), token.ID)
		assert.Equal(t, int64(3), token.UserID)
		assert.Equal(t, "opaque-value", token.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTokenByUser(t *testing.T) {
	t.Run("returns the user's current token", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM tokens WHERE user_id = $1`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "value"}).
				AddRow(int64(9), int64(3), "opaque-value"))

		token, err := repos.TokenByUser(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "opaque-value", token.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user without a token maps to not found", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM tokens WHERE user_id = $1`)).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "value"}))

		_, err := repos.TokenByUser(context.Background(), 4)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserByToken(t *testing.T) {
	t.Run("resolves token to its owner", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		rows := sqlmock.NewRows([]string{"id", "group_id", "name", "password_hash"}).
			AddRow(int64(3), nil, "blob", "$2a$10$hash")
		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT users.* FROM users JOIN tokens ON tokens.user_id = users.id WHERE tokens.value = $1`)).
			WithArgs("opaque-value").
			WillReturnRows(rows)

		u, err := repos.UserByToken(context.Background(), "opaque-value")
		require.NoError(t, err)
		assert.Equal(t, "blob", u.Name)
		assert.Nil(t, u.GroupID)
	})

	t.Run("unknown token maps to not found", func(t *testing.T) {
		repos, mock, _ := newMockRepos(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.* FROM users JOIN tokens`)).
			WithArgs("stale").
			WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "password_hash"}))

		_, err := repos.UserByToken(context.Background(), "stale")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
