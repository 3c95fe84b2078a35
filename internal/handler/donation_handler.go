package handler

import (
	"net/http"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DonationHandler struct {
	donationLogic *logic.DonationLogic
	clock         chain.Clock
}

func NewDonationHandler(db *gorm.DB, chainClient chain.Chain, escrowAddr string) *DonationHandler {
	return &DonationHandler{
		donationLogic: logic.NewDonationLogic(db, chainClient, escrowAddr),
		clock:         chainClient,
	}
}

// Donate 向项目捐赠
func (h *DonationHandler) Donate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	block, ok := latestBlock(c, h.clock)
	if !ok {
		return
	}

	amount, err := h.donationLogic.Donate(c.Request.Context(), caller, block, id, req.Amount)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠成功", gin.H{"amount": amount})
}

// GetProjectDonations 获取项目捐赠记录
func (h *DonationHandler) GetProjectDonations(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	donations, total, err := h.donationLogic.GetProjectDonations(id, page, pageSize)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"donations": donations,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetDonation 获取某捐赠人对项目的累计捐赠
func (h *DonationHandler) GetDonation(c *gin.Context) {
	id, ok := parseId(c, "id")
	if !ok {
		return
	}

	address := c.Param("address")
	donation, err := h.donationLogic.GetDonation(id, address)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", donation)
}

// GetDonorStats 获取捐赠人全局统计
func (h *DonationHandler) GetDonorStats(c *gin.Context) {
	address := c.Param("address")
	stats, err := h.donationLogic.GetDonorStats(address)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}
