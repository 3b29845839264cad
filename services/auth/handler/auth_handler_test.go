package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"friender/pkg/dto"
	"friender/pkg/geo"
	"friender/pkg/models"
	"friender/services/auth/handler"
	"friender/services/auth/repository"
	"friender/services/auth/service"
	"friender/services/auth/transport"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = *user
	return nil
}

func (m *memoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func newEcho() *echo.Echo {
	store := &memoryStore{users: map[string]models.User{}}
	svc := service.NewAuthService(store, geo.Default(), nil, "secret", 0)
	e := echo.New()
	transport.RegisterAuthRoutes(e, handler.NewAuthHandler(svc))
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const signupBody = `{"email":"ann@example.com","password":"secret1","firstName":"Ann","lastName":"Lee","location":10001,"radius":25}`

func TestSignupAndLogin(t *testing.T) {
	e := newEcho()

	rec := post(e, "/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var tok dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.NotEmpty(t, tok.Token)

	rec = post(e, "/signup", signupBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"email_taken"}`, rec.Body.String())

	rec = post(e, "/login", `{"email":"ann@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(e, "/login", `{"email":"ann@example.com","password":"nottheone"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_credentials"}`, rec.Body.String())
}

func TestSignup_InvalidForm(t *testing.T) {
	e := newEcho()

	rec := post(e, "/signup", `{"email":"nope","password":"123","firstName":"","lastName":"Lee","location":99}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_form", resp.Error)
	for _, field := range []string{"email", "password", "firstName", "location"} {
		assert.Contains(t, resp.Fields, field)
	}
}

func TestSignup_LocationOutsideTable(t *testing.T) {
	e := newEcho()

	body := strings.Replace(signupBody, "10001", "94103", 1)
	rec := post(e, "/signup", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
}
