package model

import (
	"time"
)

// ProjectModel 资助项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"size:256;not null" binding:"required"`
	Description string `json:"description" gorm:"size:1024;not null"`
	Category    string `json:"category" gorm:"size:64;not null"`

	// 资金信息（最小记账单位，整数）
	TargetAmount int64 `json:"target_amount" gorm:"not null" binding:"required,min=1"`
	RaisedAmount int64 `json:"raised_amount" gorm:"default:0"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'pending'"`

	// 发起人信息
	OwnerAddress string `json:"owner_address" gorm:"not null;index"`

	// 注册时的逻辑时间（区块号）
	CreatedBlock int64 `json:"created_block"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 待开始
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// Valid 检查状态是否为已定义的枚举值
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// AcceptsDonations 检查当前状态是否允许接受捐赠
func (s ProjectStatus) AcceptsDonations() bool {
	return s == ProjectStatusPending || s == ProjectStatusActive
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
