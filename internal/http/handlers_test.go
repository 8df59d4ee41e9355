package http

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mange/backend/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "pgx")
	t.Cleanup(func() { db.Close() })

	app := fiber.New()
	Register(app, service.New(db))
	return app, mock
}

func TestLoginRoute(t *testing.T) {
	t.Run("valid credentials return the issued token", func(t *testing.T) {
		app, mock := newTestApp(t)

		hash, err := bcrypt.GenerateFromPassword([]byte("doko"), bcrypt.MinCost)
		require.NoError(t, err)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE name = $1`)).
			WithArgs("blob").
			WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "password_hash"}).
				AddRow(int64(1), nil, "blob", string(hash)))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tokens`)).
			WithArgs(int64(1), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		req := httptest.NewRequest(fiber.MethodPost, "/login",
			strings.NewReader(`{"name":"blob","password":"doko"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		app, mock := newTestApp(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE name = $1`)).
			WithArgs("blob").
			WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "password_hash"}))

		req := httptest.NewRequest(fiber.MethodPost, "/login",
			strings.NewReader(`{"name":"blob","password":"nope"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireToken(t *testing.T) {
	t.Run("requests without a bearer token are rejected", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/branches", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("a stored token admits the request", func(t *testing.T) {
		app, mock := newTestApp(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.* FROM users JOIN tokens`)).
			WithArgs("opaque-value").
			WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "password_hash"}).
				AddRow(int64(1), nil, "blob", "x"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM branches ORDER BY id`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind", "address", "monthly_limit", "extra_percent", "extra", "last_reading", "reading"}))

		req := httptest.NewRequest(fiber.MethodGet, "/branches", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer opaque-value")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
