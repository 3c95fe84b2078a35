package handler

import (
	"net/http"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/logic"
	"github.com/Hagukwe/Green-grant/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	clock        chain.Clock
}

func NewProjectHandler(db *gorm.DB, clock chain.Clock) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
		clock:        clock,
	}
}

// RegisterProject 注册项目
func (h *ProjectHandler) RegisterProject(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req RegisterProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	block, ok := latestBlock(c, h.clock)
	if !ok {
		return
	}

	project, err := h.projectLogic.RegisterProject(caller, block,
		req.Title, req.Description, req.Category, req.TargetAmount)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目注册成功", project)
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	page, pageSize := parsePagination(c)

	projects, total, err := h.projectLogic.GetProjects(status, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects":  projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", project)
}

// UpdateProjectStatus 更新项目状态
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	newStatus, err := h.projectLogic.UpdateProjectStatus(caller, id, model.ProjectStatus(req.Status))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目状态更新成功", gin.H{"status": newStatus})
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	if err := h.projectLogic.CancelProject(caller, id); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "项目已取消", nil)
}

// GetFundingProgress 获取筹款进度
func (h *ProjectHandler) GetFundingProgress(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	progress, err := h.projectLogic.FundingProgress(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	fullyFunded, err := h.projectLogic.IsFullyFunded(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"progress":     progress,
		"fully_funded": fullyFunded,
	})
}

// IsProjectOwner 检查地址是否为项目发起人
func (h *ProjectHandler) IsProjectOwner(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	address := c.Query("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少address参数")
		return
	}

	isOwner, err := h.projectLogic.IsProjectOwner(id, address)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"is_owner": isOwner})
}
