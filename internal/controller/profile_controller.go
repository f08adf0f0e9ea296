package controller

import (
	"errors"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// @Summary Profile
// @Description Points, level, accuracy and achievement count for the caller
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	profile, err := c.ProfileService.GetProfile(user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, util.ErrUserNotFound.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
