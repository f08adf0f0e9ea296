package controller

import (
	"errors"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

type AuthController struct {
	AuthService  *service.AuthService
	SessionStore sessions.Store
}

func NewAuthController(authService *service.AuthService, store sessions.Store) *AuthController {
	return &AuthController{
		AuthService:  authService,
		SessionStore: store,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required,min=3,max=150"`
	Password        string `form:"password" json:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a student account and signs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "account"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPasswordMismatch):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if err := util.LoginSession(ctx, c.SessionStore, user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"user": user})
}

// Login godoc
// @Summary Sign in
// @Description Establishes a session and also returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if err := util.LoginSession(ctx, c.SessionStore, user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"user": user, "token": token})
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := util.LogoutSession(ctx, c.SessionStore); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
