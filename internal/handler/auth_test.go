package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/sneaker-store/internal/config"
	"github.com/iliyamo/sneaker-store/internal/repository"
	"github.com/iliyamo/sneaker-store/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		TokenTTLDays: 7,
		BcryptCost:   bcrypt.MinCost,
	}
}

// jsonCtx builds an Echo context carrying a JSON body, returning the
// context and the recorder capturing the response.
func jsonCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newUserRepoMock(t *testing.T) (*repository.UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repository.NewUserRepo(db), mock
}

func TestRegisterRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"jo","email":"jo@example.com","password":"hunter22"}`},
		{"bad email", `{"username":"jordan","email":"not-an-email","password":"hunter22"}`},
		{"short password", `{"username":"jordan","email":"jo@example.com","password":"12345"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, _ := newUserRepoMock(t)
			h := NewAuthHandler(testConfig(), repo)

			c, rec := jsonCtx(t, http.MethodPost, "/api/auth/register", tc.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jordan' for key 'users.username'"))
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/register",
		`{"username":"jordan","email":"jordan@example.com","password":"hunter22"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestRegisterIssuesTokenWithUserRole(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("jordan", "jordan@example.com", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(5, 1))
	h := NewAuthHandler(testConfig(), repo)

	// A role in the request body must be ignored; registration never
	// grants admin.
	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/register",
		`{"username":"jordan","email":"jordan@example.com","password":"hunter22","role":"admin"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token   string    `json:"token"`
		Role    string    `json:"role"`
		Expires time.Time `json:"expires"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user", resp.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), resp.Expires, time.Minute)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUserUnauthorized(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("SELECT id,username,email,password_hash,role,created_at FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"hunter22"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("FROM users WHERE username=").
		WithArgs("jordan").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
			AddRow(5, "jordan", "jordan@example.com", hash, "user", time.Now()))
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/login", `{"username":"jordan","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Same message as an unknown user so the endpoint does not reveal
	// which part of the credentials was wrong.
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestMeReturnsPersistedRecord(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	// The database row is what gets served, not the token claims: the
	// claims say nothing about the later promotion to admin.
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
			AddRow(42, "jordan", "jordan@new.example.com", "$2a$04$hash", "admin", time.Now()))
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodGet, "/api/me", "")
	c.Set("user_id", float64(42)) // JWT numeric claims decode as float64

	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		UserID   uint64 `json:"user_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.UserID)
	assert.Equal(t, "jordan", resp.Username)
	assert.Equal(t, "jordan@new.example.com", resp.Email)
	assert.Equal(t, "admin", resp.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeDeletedAccountUnauthorized(t *testing.T) {
	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodGet, "/api/me", "")
	c.Set("user_id", float64(42))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	repo, mock := newUserRepoMock(t)
	mock.ExpectQuery("FROM users WHERE username=").
		WithArgs("jordan").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
			AddRow(5, "jordan", "jordan@example.com", hash, "admin", time.Now()))
	h := NewAuthHandler(testConfig(), repo)

	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/login", `{"username":"jordan","password":"correct-horse"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jordan", resp.Username)
	assert.Equal(t, "admin", resp.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
