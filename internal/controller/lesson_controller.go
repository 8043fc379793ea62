package controller

import (
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Service *service.LessonScoreService
}

func NewLessonController(svc *service.LessonScoreService) *LessonController {
	return &LessonController{Service: svc}
}

type CompleteLessonRequest struct {
	LessonType string `json:"lessonType" binding:"required"`
}

// @Summary 完成课时
// @Description 首次完成时按课时类型计分，重复调用不会重复加分
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课时ID"
// @Param body body CompleteLessonRequest true "课时类型"
// @Success 200 {object} util.Response{data=service.LessonCompletion}
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) Complete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.RecordCompletion(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.LessonType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
