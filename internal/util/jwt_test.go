package util

import (
	"firstaid_backend/internal/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Username: "alice", Role: model.Student}
	user.ID = 7

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != model.Student {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatalf("expected signature check to fail with wrong secret")
	}
}

func TestExpiredJWTIsRejected(t *testing.T) {
	user := &model.User{Username: "bob"}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetUserFromContext(c) != nil {
		t.Fatalf("expected no user on empty context")
	}

	SetUserInContext(c, &Claims{UserID: 3})
	if got := GetUserFromContext(c); got == nil || got.UserID != 3 {
		t.Fatalf("expected user 3, got %+v", got)
	}
}
