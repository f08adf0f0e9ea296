package controller

import (
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// @Summary Leaderboard
// @Description All users ranked by total points, plus the caller's standing
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.LeaderboardView}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	view, err := c.LeaderboardService.Get(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
