package util

import (
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewSessionStore(config.SessionConfig{Secret: "0123456789abcdef0123456789abcdef", MaxAge: 3600})

	user := &model.User{Username: "carol", Role: model.Admin}
	user.ID = 42

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	if err := LoginSession(c, store, user); err != nil {
		t.Fatalf("login session: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	claims := ClaimsFromSession(req, store)
	if claims == nil {
		t.Fatalf("expected claims from session cookie")
	}
	if claims.UserID != 42 || claims.Username != "carol" || claims.Role != model.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestClaimsFromSessionWithoutCookie(t *testing.T) {
	store := NewSessionStore(config.SessionConfig{Secret: "secret", MaxAge: 3600})
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if claims := ClaimsFromSession(req, store); claims != nil {
		t.Fatalf("expected nil claims, got %+v", claims)
	}
}
