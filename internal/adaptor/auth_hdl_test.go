package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"book-review/internal/apperror"
	"book-review/internal/data/entity"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	logoutErr   error
	session     *entity.Session
}

func (s *stubAuthService) Register(_ context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &response.UserResponse{ID: uuid.NewString(), Email: req.Email, Username: req.Username}, nil
}

func (s *stubAuthService) Login(_ context.Context, req *request.LoginRequest) (*response.LoginResponse, *entity.Session, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return &response.LoginResponse{User: response.UserResponse{Email: req.Email}}, s.session, nil
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error {
	return s.logoutErr
}

func newAuthHandler(service *stubAuthService) *AuthHandler {
	return NewAuthHandler(service, utils.SessionConfig{CookieName: "session_token", ExpiryHours: 24}, zap.NewNop())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		Username:   "alice",
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	handler := newAuthHandler(&stubAuthService{session: session})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "session_token", cookie.Name)
	assert.Equal(t, session.Token.String(), cookie.Value)
	assert.True(t, cookie.HttpOnly, "session cookie must be http-only")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.WithinDuration(t, session.ExpiresAt, cookie.Expires, time.Second)
}

func TestLoginFailureSetsNoCookie(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{loginErr: apperror.Unauthenticated("Invalid email")})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"nobody@example.com"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegisterBadBody(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidationError(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{registerErr: apperror.ValidationFailed("email", "Cannot register empty email")})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutWithoutSessionContext(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	handler := newAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = req.WithContext(utils.SetTokenContext(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
