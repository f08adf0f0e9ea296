package util

import (
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "firstaid_session"

	sessionUserID   = "user_id"
	sessionUsername = "username"
	sessionRole     = "role"
)

func NewSessionStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// LoginSession stores the user identity in the session cookie.
func LoginSession(c *gin.Context, store sessions.Store, user *model.User) error {
	session, _ := store.Get(c.Request, SessionName)
	session.Values[sessionUserID] = user.ID
	session.Values[sessionUsername] = user.Username
	session.Values[sessionRole] = string(user.Role)
	return session.Save(c.Request, c.Writer)
}

func LogoutSession(c *gin.Context, store sessions.Store) error {
	session, _ := store.Get(c.Request, SessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

// ClaimsFromSession returns nil when the request carries no valid session.
func ClaimsFromSession(r *http.Request, store sessions.Store) *Claims {
	session, err := store.Get(r, SessionName)
	if err != nil || session.IsNew {
		return nil
	}
	id, ok := session.Values[sessionUserID].(uint)
	if !ok || id == 0 {
		return nil
	}
	username, _ := session.Values[sessionUsername].(string)
	role, _ := session.Values[sessionRole].(string)
	return &Claims{UserID: id, Username: username, Role: model.UserRole(role)}
}
