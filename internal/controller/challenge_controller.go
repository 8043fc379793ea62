package controller

import (
	"edu_challenge_backend/internal/grading"
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Service    *service.ChallengeService
	Submission *service.SubmissionService
}

func NewChallengeController(svc *service.ChallengeService, submission *service.SubmissionService) *ChallengeController {
	return &ChallengeController{Service: svc, Submission: submission}
}

// @Summary 获取挑战列表
// @Description 仅返回已发布的挑战，附带类型摘要与完成人数
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param search query string false "标题或 slug 关键字"
// @Param type query string false "挑战类型" Enums(quiz, puzzle, ordering, fillBlank)
// @Param page query int false "页码"
// @Param perPage query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	var q service.ChallengeQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.Service.List(ctx.Request.Context(), q)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取挑战详情
// @Description 返回完整题目数据、当前用户成绩与该挑战最高分
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=service.ChallengeDetail}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	var userID uint
	if user != nil {
		userID = user.UserID
	}

	detail, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 提交挑战
// @Description 按挑战类型评分，覆盖该用户之前的成绩
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Param body body grading.Submission true "提交内容，只填写与挑战类型对应的字段"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id}/submit [post]
func (c *ChallengeController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req grading.Submission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Submission.Submit(ctx.Request.Context(), ctx.Param("id"), user.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
