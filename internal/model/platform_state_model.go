package model

import (
	"time"
)

// PlatformStateId 平台状态单例行的主键
const PlatformStateId int64 = 1

// PlatformStateModel 平台全局状态（单行）
//
// owner_address 为平台管理员，同时承担里程碑验证与资金释放的角色；
// 只能通过所有权转移操作变更。total_funds 为当前托管中、尚未释放的
// 资金总额，捐赠时增加，释放与紧急提取时减少，恒不为负。
type PlatformStateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerAddress string `json:"owner_address" gorm:"not null"`
	TotalFunds   int64  `json:"total_funds" gorm:"default:0"`
}

// TableName 自定义表名
func (PlatformStateModel) TableName() string {
	return "platform_state"
}
