package controller

import (
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	Service *service.SettingService
}

func NewSettingController(svc *service.SettingService) *SettingController {
	return &SettingController{Service: svc}
}

type SetPointsRequest struct {
	Points *float64 `json:"points" binding:"required"`
}

// @Summary 课时积分配置
// @Tags 系统设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/settings/points [get]
func (c *SettingController) ListPoints(ctx *gin.Context) {
	points, err := c.Service.ListPoints(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

// @Summary 修改课时积分
// @Tags 系统设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonType path string true "课时类型"
// @Param body body SetPointsRequest true "积分"
// @Success 200 {object} util.Response
// @Router /api/admin/settings/points/{lessonType} [put]
func (c *SettingController) SetPoints(ctx *gin.Context) {
	var req SetPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lessonType := ctx.Param("lessonType")
	if err := c.Service.SetPoints(ctx.Request.Context(), lessonType, *req.Points); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lessonType": lessonType, "points": *req.Points})
}
