package controller

import (
	"errors"
	"firstaid_backend/internal/service"
	"firstaid_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TrainingController serves the quiz modules and scenario exercises.
type TrainingController struct {
	CatalogService  *service.CatalogService
	ProgressService *service.ProgressService
}

func NewTrainingController(catalogService *service.CatalogService, progressService *service.ProgressService) *TrainingController {
	return &TrainingController{
		CatalogService:  catalogService,
		ProgressService: progressService,
	}
}

// swagger:model SubmitRequest
type SubmitRequest struct {
	Score     *int `form:"score" json:"score" binding:"required,min=0"`
	TimeSpent *int `form:"time_spent" json:"time_spent" binding:"omitempty,min=0"`
}

func (r SubmitRequest) submission() service.Submission {
	return service.Submission{Score: *r.Score, TimeSpent: r.TimeSpent}
}

// writeTrainingError maps catalog misses to 404 and everything else to 500.
func writeTrainingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrScenarioNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary List modules
// @Description All quiz modules and the titles the user has passed
// @Tags training
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ModulesView}
// @Router /api/modules [get]
func (c *TrainingController) ListModules(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	view, err := c.CatalogService.ListModules(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Module detail
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param slug path string true "module slug"
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/modules/{slug} [get]
func (c *TrainingController) GetModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	snap, err := c.CatalogService.ModuleDetail(user.UserID, ctx.Param("slug"))
	if err != nil {
		writeTrainingError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// @Summary Submit a quiz attempt
// @Description Records an attempt and keeps the best score and fastest time
// @Tags training
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "module slug"
// @Param body body SubmitRequest true "attempt"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{slug}/submit [post]
func (c *TrainingController) SubmitModule(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.ProgressService.SubmitModule(ctx.Request.Context(), user.UserID, ctx.Param("slug"), req.submission())
	if err != nil {
		writeTrainingError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List scenarios
// @Description All scenarios with the user's progress on each
// @Tags training
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ScenarioStatus}
// @Router /api/scenarios [get]
func (c *TrainingController) ListScenarios(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	scenarios, err := c.CatalogService.ListScenarios(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scenarios)
}

// @Summary Scenario detail
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param slug path string true "scenario slug"
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/scenarios/{slug} [get]
func (c *TrainingController) GetScenario(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	snap, err := c.CatalogService.ScenarioDetail(user.UserID, ctx.Param("slug"))
	if err != nil {
		writeTrainingError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// @Summary Submit a scenario attempt
// @Tags training
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "scenario slug"
// @Param body body SubmitRequest true "attempt"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/scenarios/{slug}/submit [post]
func (c *TrainingController) SubmitScenario(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.ProgressService.SubmitScenario(ctx.Request.Context(), user.UserID, ctx.Param("slug"), req.submission())
	if err != nil {
		writeTrainingError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
