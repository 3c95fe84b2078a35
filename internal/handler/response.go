package handler

import (
	"errors"
	"net/http"

	"github.com/Hagukwe/Green-grant/internal/logic"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailFromError 按错误类别映射HTTP状态码并返回错误响应
func FailFromError(c *gin.Context, err error) {
	ErrorResponse(c, statusFromError(err), err.Error())
}

// statusFromError 错误类别到HTTP状态码的映射
func statusFromError(err error) int {
	switch {
	case errors.Is(err, logic.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrAlreadyExists),
		errors.Is(err, logic.ErrInvalidStatus),
		errors.Is(err, logic.ErrMilestoneNotVerified),
		errors.Is(err, logic.ErrAlreadyReleased),
		errors.Is(err, logic.ErrProjectNotActive):
		return http.StatusConflict
	case errors.Is(err, logic.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CallerAddressKey 上下文中调用方地址的键
const CallerAddressKey = "callerAddress"

// requireCaller 获取调用方地址，缺失时返回401
func requireCaller(c *gin.Context) (string, bool) {
	caller := c.GetString(CallerAddressKey)
	if caller == "" {
		ErrorResponse(c, http.StatusUnauthorized, "缺少调用方地址")
		return "", false
	}
	return caller, true
}
