package model

import (
	"time"
)

// DonorStatsModel 捐赠人全局统计
//
// projects_supported 按捐赠次数累加，不按去重后的项目数统计，
// 与链上合约的口径保持一致。
type DonorStatsModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorAddress      string `json:"donor_address" gorm:"not null;uniqueIndex"`
	TotalDonated      int64  `json:"total_donated" gorm:"default:0"`
	ProjectsSupported int64  `json:"projects_supported" gorm:"default:0"`
}

// TableName 自定义表名
func (DonorStatsModel) TableName() string {
	return "donor_stats"
}
