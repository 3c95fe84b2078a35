package handler

import (
	"net/http"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
	clock          chain.Clock
}

func NewMilestoneHandler(db *gorm.DB, chainClient chain.Chain, escrowAddr string) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneLogic: logic.NewMilestoneLogic(db, chainClient, escrowAddr),
		clock:          chainClient,
	}
}

// AddMilestone 创建里程碑
func (h *MilestoneHandler) AddMilestone(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	var req AddMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	milestoneId, err := h.milestoneLogic.AddMilestone(caller, id, req.MilestoneId,
		req.Title, req.Description, req.Amount)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "里程碑创建成功", gin.H{"milestone_id": milestoneId})
}

// GetProjectMilestones 获取项目里程碑列表
func (h *MilestoneHandler) GetProjectMilestones(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	milestones, err := h.milestoneLogic.GetProjectMilestones(id)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"milestones": milestones})
}

// GetMilestone 获取里程碑详情
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}
	mid, ok := parseId(c, "mid")
	if !ok {
		return
	}

	milestone, err := h.milestoneLogic.GetMilestone(id, mid)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", milestone)
}

// VerifyMilestone 验证里程碑
func (h *MilestoneHandler) VerifyMilestone(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}
	mid, ok := parseId(c, "mid")
	if !ok {
		return
	}

	block, ok := latestBlock(c, h.clock)
	if !ok {
		return
	}

	if err := h.milestoneLogic.VerifyMilestone(caller, block, id, mid); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "里程碑验证成功", gin.H{"verified": true})
}

// BatchVerifyMilestones 批量验证里程碑
func (h *MilestoneHandler) BatchVerifyMilestones(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req BatchVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	block, ok := latestBlock(c, h.clock)
	if !ok {
		return
	}

	if err := h.milestoneLogic.BatchVerifyMilestones(caller, block, req.Milestones); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "批量验证成功", gin.H{"verified": len(req.Milestones)})
}

// ReleaseMilestoneFunds 释放里程碑资金
func (h *MilestoneHandler) ReleaseMilestoneFunds(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}
	mid, ok := parseId(c, "mid")
	if !ok {
		return
	}

	block, ok := latestBlock(c, h.clock)
	if !ok {
		return
	}

	amount, err := h.milestoneLogic.ReleaseMilestoneFunds(c.Request.Context(), caller, block, id, mid)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资金释放成功", gin.H{"amount_released": amount})
}

// GetRelease 获取释放记录
func (h *MilestoneHandler) GetRelease(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}
	mid, ok := parseId(c, "mid")
	if !ok {
		return
	}

	record, err := h.milestoneLogic.GetRelease(id, mid)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", record)
}
