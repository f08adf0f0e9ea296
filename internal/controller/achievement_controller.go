package controller

import (
	"errors"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// @Summary List achievements
// @Description Re-checks unlock conditions, then lists every achievement with the user's earned flag
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AchievementsView}
// @Router /api/achievements [get]
func (c *AchievementController) GetAchievements(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	view, err := c.AchievementService.GetAchievements(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Upload an achievement icon
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "achievement id"
// @Param icon formData file true "image"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/achievements/{id}/icon [post]
func (c *AchievementController) UploadIcon(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid achievement id")
		return
	}

	fileHeader, err := ctx.FormFile("icon")
	if err != nil {
		util.BadRequest(ctx, "icon file is required")
		return
	}
	if fileHeader.Size > util.MaxIconSize {
		util.BadRequest(ctx, fmt.Sprintf("icon exceeds %d bytes", util.MaxIconSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	achievement, err := c.AchievementService.UpdateIcon(ctx.Request.Context(), uint(id), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAchievementNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidFileType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, achievement)
}
