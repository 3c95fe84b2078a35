package model

import (
	"time"
)

// MilestoneModel 项目里程碑模型
//
// 里程碑编号由调用方提供，在项目内唯一；(project_id, milestone_id) 构成业务主键。
// verified 与 funds_released 均为单向标记：一旦置位不可回退，
// 且 funds_released 只能在 verified 之后置位。
type MilestoneModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_project_milestone"`
	MilestoneId int64  `json:"milestone_id" gorm:"not null;uniqueIndex:idx_project_milestone"`
	Title       string `json:"title" gorm:"size:256;not null"`
	Description string `json:"description" gorm:"size:1024;not null"`

	// 本里程碑授权释放的资金份额
	Amount int64 `json:"amount" gorm:"not null"`

	// 验证信息
	Verified        bool   `json:"verified" gorm:"default:false"`
	VerifierAddress string `json:"verifier_address"`
	VerifiedBlock   *int64 `json:"verified_block"`

	// 释放信息
	FundsReleased bool   `json:"funds_released" gorm:"default:false"`
	ReleasedBlock *int64 `json:"released_block"`
}

// TableName 自定义表名
func (MilestoneModel) TableName() string {
	return "project_milestone"
}
