package model

import (
	"time"
)

// DonationModel 捐赠记录
//
// 按 (project_id, donor_address) 累计：同一捐赠人对同一项目的多次捐赠
// 合并为一条记录，金额累加，donated_block 取最近一次捐赠的区块号。
type DonationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId    int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_project_donor"`
	DonorAddress string `json:"donor_address" gorm:"not null;uniqueIndex:idx_project_donor"`
	Amount       int64  `json:"amount" gorm:"not null"`
	DonatedBlock int64  `json:"donated_block"`
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}
