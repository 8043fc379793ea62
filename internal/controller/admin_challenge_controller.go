package controller

import (
	"edu_challenge_backend/internal/service"
	"edu_challenge_backend/internal/util"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

type AdminChallengeController struct {
	Service *service.ChallengeAdminService
	Images  *service.ImageService
}

func NewAdminChallengeController(svc *service.ChallengeAdminService, images *service.ImageService) *AdminChallengeController {
	return &AdminChallengeController{Service: svc, Images: images}
}

// @Summary 管理端挑战列表
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param search query string false "标题或 slug 关键字"
// @Param status query string false "状态" Enums(draft, published, archived)
// @Param type query string false "挑战类型" Enums(quiz, puzzle, ordering, fillBlank)
// @Param page query int false "页码"
// @Param perPage query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/challenges [get]
func (c *AdminChallengeController) List(ctx *gin.Context) {
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

// @Summary 创建挑战
// @Description slug 为空时由标题生成，重复时自动追加后缀
// @Tags 挑战管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChallengeInput true "挑战信息"
// @Success 201 {object} util.Response{data=service.ChallengeDetail}
// @Failure 400 {object} util.Response
// @Router /api/admin/challenges [post]
func (c *AdminChallengeController) Create(ctx *gin.Context) {
	var req service.ChallengeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, detail)
}

// @Summary 管理端挑战详情
// @Description 不限制发布状态
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=service.ChallengeDetail}
// @Failure 404 {object} util.Response
// @Router /api/admin/challenges/{id} [get]
func (c *AdminChallengeController) Get(ctx *gin.Context) {
	detail, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 更新挑战
// @Description 提供题目数据或修改类型时整体替换题目
// @Tags 挑战管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Param body body service.ChallengeInput true "需要修改的字段"
// @Success 200 {object} util.Response{data=service.ChallengeDetail}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/challenges/{id} [put]
func (c *AdminChallengeController) Update(ctx *gin.Context) {
	var req service.ChallengeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 删除挑战
// @Description 已有成绩记录的挑战会被归档而不是删除
// @Tags 挑战管理
// @Produce json
// @Security BearerAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=service.RemoveResult}
// @Failure 404 {object} util.Response
// @Router /api/admin/challenges/{id} [delete]
func (c *AdminChallengeController) Delete(ctx *gin.Context) {
	result, err := c.Service.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 上传拼图图片
// @Tags 挑战管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/challenges/puzzle-image [post]
func (c *AdminChallengeController) UploadPuzzleImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if !util.IsAllowedImageExt(file.Filename) {
		util.BadRequest(ctx, "unsupported image extension")
		return
	}
	if file.Size > util.MaxPuzzleImageMB<<20 {
		util.BadRequest(ctx, fmt.Sprintf("image exceeds %dMB", util.MaxPuzzleImageMB))
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, util.MaxPuzzleImageMB<<20+1))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	url, err := c.Images.UploadPuzzleImage(ctx.Request.Context(), data)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url})
}
