package handler

import (
	"github.com/Hagukwe/Green-grant/internal/logic"
)

// 请求模型

// RegisterProjectRequest 注册项目请求
type RegisterProjectRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Category     string `json:"category" binding:"required"`
	TargetAmount int64  `json:"target_amount" binding:"required"`
}

// UpdateProjectStatusRequest 更新项目状态请求
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DonateRequest 捐赠请求
type DonateRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// AddMilestoneRequest 创建里程碑请求
type AddMilestoneRequest struct {
	MilestoneId int64  `json:"milestone_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
}

// BatchVerifyRequest 批量验证请求
type BatchVerifyRequest struct {
	Milestones []logic.MilestoneRef `json:"milestones" binding:"required"`
}

// TransferOwnershipRequest 所有权转移请求
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// EmergencyWithdrawRequest 紧急提取请求
type EmergencyWithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}
