package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/knst/site-services/internal/config"
	"github.com/knst/site-services/internal/sessions"
)

// fake sessions repo
type fakeSessionsRepo struct {
	store map[string]*sessions.Session
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *sessions.Session) error {
	if f.store == nil {
		f.store = map[string]*sessions.Session{}
	}
	f.store[s.RefreshToken] = s
	return nil
}

func (f *fakeSessionsRepo) GetByRefresh(ctx context.Context, refresh string) (*sessions.Session, error) {
	s, ok := f.store[refresh]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionsRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(f.store, refresh)
	return nil
}

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "auth-test-secret-32-bytes-xxxxxx"
	cfg.Auth.AdminPassword = "letmein"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
	return cfg
}

func newAuthRouter(cfg *config.Config, sSvc *sessions.Service, b *sessions.Blacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(cfg, sSvc, b).Register(r.Group("/api/admin"))
	return r
}

func TestLogin_Success(t *testing.T) {
	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	req := httptest.NewRequest("POST", "/api/admin/auth/login", strings.NewReader(`{"password":"letmein"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	assert.NotEmpty(t, got["accessToken"])
	assert.NotEmpty(t, got["refreshToken"])
	assert.EqualValues(t, 900, got["expiresIn"])
}

func TestLogin_WrongPassword(t *testing.T) {
	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	req := httptest.NewRequest("POST", "/api/admin/auth/login", strings.NewReader(`{"password":"guess"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestLogin_NotConfigured(t *testing.T) {
	cfg := authTestConfig()
	cfg.Auth.AdminPassword = ""
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	req := httptest.NewRequest("POST", "/api/admin/auth/login", strings.NewReader(`{"password":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}

func TestRefresh_Success(t *testing.T) {
	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	rt, err := sSvc.CreateSession(context.Background(), "admin", time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	body := fmt.Sprintf(`{"refresh_token":"%s"}`, rt)
	req := httptest.NewRequest("POST", "/api/admin/auth/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	assert.NotEmpty(t, got["access_token"])
}

func TestRefresh_InvalidRefresh(t *testing.T) {
	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	req := httptest.NewRequest("POST", "/api/admin/auth/refresh", strings.NewReader(`{"refresh_token":"does-not-exist"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestLogout_BlacklistsAccessAndDeletesRefresh(t *testing.T) {
	m, err := mr.Run()
	assert.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	blacklist := sessions.NewBlacklist(client)

	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, blacklist)

	rt, err := sSvc.CreateSession(context.Background(), "admin", time.Hour)
	assert.NoError(t, err)

	// craft an access token with exp in the future
	exp := time.Now().Add(2 * time.Minute).Unix()
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"admin","exp":%d}`, exp)))
	access := "hdr." + payload + ".sig"

	body := fmt.Sprintf(`{"refresh_token":"%s"}`, rt)
	req := httptest.NewRequest("POST", "/api/admin/auth/logout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	// refresh session should be deleted
	sess, err := sSvc.ValidateRefresh(context.Background(), rt)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	// access token should be blacklisted in redis
	assert.True(t, m.Exists("blacklist:access:"+access))
}

func TestLogout_NilBlacklistStillDeletesRefresh(t *testing.T) {
	cfg := authTestConfig()
	sSvc := sessions.NewService(&fakeSessionsRepo{})
	r := newAuthRouter(cfg, sSvc, nil)

	rt, err := sSvc.CreateSession(context.Background(), "admin", time.Hour)
	assert.NoError(t, err)

	body := fmt.Sprintf(`{"refresh_token":"%s"}`, rt)
	req := httptest.NewRequest("POST", "/api/admin/auth/logout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	sess, err := sSvc.ValidateRefresh(context.Background(), rt)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestParseExpFromJWT_VariousFormats(t *testing.T) {
	extra := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s1","exp":1700000000}`))
	expTime, err := parseExpFromJWT("hdr." + extra + ".sig")
	if err != nil {
		t.Fatalf("unexpected error from parseExpFromJWT: %v", err)
	}
	if expTime.Unix() != 1700000000 {
		t.Fatalf("unexpected exp time: %v", expTime.Unix())
	}

	// missing exp
	nopayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"s2"}`))
	if _, err := parseExpFromJWT("hdr." + nopayload + ".sig"); err == nil {
		t.Fatalf("expected error for missing exp claim")
	}

	// malformed token
	if _, err := parseExpFromJWT("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
