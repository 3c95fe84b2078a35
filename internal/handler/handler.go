package handler

import (
	"net/http"
	"strconv"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/gin-gonic/gin"
)

// parseId 解析路径中的整数参数
func parseId(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "无效的"+name+"参数")
		return 0, false
	}
	return id, true
}

// latestBlock 获取当前区块号作为操作的逻辑时间
func latestBlock(c *gin.Context, clock chain.Clock) (int64, bool) {
	block, err := clock.LatestBlock(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusBadGateway, "获取区块号失败: "+err.Error())
		return 0, false
	}
	return block, true
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
