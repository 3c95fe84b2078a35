package handler

import (
	"net/http"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	adminLogic *logic.AdminLogic
}

func NewAdminHandler(db *gorm.DB, chainClient chain.Chain, escrowAddr string) *AdminHandler {
	return &AdminHandler{
		adminLogic: logic.NewAdminLogic(db, chainClient, escrowAddr),
	}
}

// TransferOwnership 转移平台所有权
func (h *AdminHandler) TransferOwnership(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.adminLogic.TransferOwnership(caller, req.NewOwner); err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "所有权转移成功", gin.H{"new_owner": req.NewOwner})
}

// EmergencyWithdraw 紧急提取托管资金
func (h *AdminHandler) EmergencyWithdraw(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req EmergencyWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := h.adminLogic.EmergencyWithdraw(c.Request.Context(), caller, req.Amount)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "紧急提取成功", gin.H{"amount": amount})
}

// GetPlatformFunds 获取平台托管余额
func (h *AdminHandler) GetPlatformFunds(c *gin.Context) {
	funds, err := h.adminLogic.PlatformFunds()
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"platform_funds": funds})
}

// GetPlatformStats 获取平台聚合统计
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminLogic.PlatformStats()
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}
