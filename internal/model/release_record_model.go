package model

import (
	"time"
)

// ReleaseRecordModel 资金释放记录
//
// 与已释放的里程碑一一对应，写入后不再变更。
type ReleaseRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId        int64  `json:"project_id" gorm:"not null;uniqueIndex:idx_release_milestone"`
	MilestoneId      int64  `json:"milestone_id" gorm:"not null;uniqueIndex:idx_release_milestone"`
	Amount           int64  `json:"amount" gorm:"not null"`
	RecipientAddress string `json:"recipient_address" gorm:"not null"`
	ReleasedBy       string `json:"released_by" gorm:"not null"`
	ReleaseBlock     int64  `json:"release_block"`
}

// TableName 自定义表名
func (ReleaseRecordModel) TableName() string {
	return "release_record"
}
