package controller

import (
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	Service *service.ScoreService
}

func NewScoreController(svc *service.ScoreService) *ScoreController {
	return &ScoreController{Service: svc}
}

// @Summary 我的积分
// @Description 课时积分与挑战积分（按类型拆分）
// @Tags 积分
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DetailedScore}
// @Router /api/scores/me [get]
func (c *ScoreController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	score, err := c.Service.UserDetailedScore(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, score)
}

// @Summary 我的排名
// @Description 排名 = 1 + 总分高于我的人数，同分同名次
// @Tags 积分
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserRank}
// @Failure 404 {object} util.Response
// @Router /api/scores/me/rank [get]
func (c *ScoreController) MyRank(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rank, err := c.Service.UserRank(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rank)
}

// @Summary 排行榜
// @Tags 积分
// @Produce json
// @Param limit query int false "返回条数，默认 10"
// @Param cohort query string false "年级，例如 G5"
// @Success 200 {object} util.Response{data=[]repository.LeaderboardRow}
// @Router /api/scores/leaderboard [get]
func (c *ScoreController) Leaderboard(ctx *gin.Context) {
	limit := util.ParseIntDefault(ctx.Query("limit"), 0)
	rows, err := c.Service.Leaderboard(ctx.Request.Context(), limit, ctx.Query("cohort"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 用户积分列表
// @Tags 积分管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "姓名或邮箱"
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]repository.UserScoreRow}}
// @Router /api/admin/scores/users [get]
func (c *ScoreController) AdminUserScores(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), util.DefaultPage)
	limit := util.ParseIntDefault(ctx.Query("limit"), util.DefaultPerPage)

	resp, err := c.Service.ListUserScores(ctx.Request.Context(), page, limit, ctx.Query("search"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 积分前几名
// @Tags 积分管理
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数，默认 5"
// @Success 200 {object} util.Response{data=[]repository.LeaderboardRow}
// @Router /api/admin/scores/top [get]
func (c *ScoreController) AdminTopUsers(ctx *gin.Context) {
	rows, err := c.Service.TopUsers(ctx.Request.Context(), util.ParseIntDefault(ctx.Query("limit"), 0))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
