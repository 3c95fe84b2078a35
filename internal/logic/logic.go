package logic

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/gorm"
)

// 文本字段长度上限
const (
	MaxTitleLen       = 256
	MaxDescriptionLen = 1024
	MaxCategoryLen    = 64
)

// loadPlatformState 读取平台状态单例行
func loadPlatformState(tx *gorm.DB) (*model.PlatformStateModel, error) {
	var state model.PlatformStateModel
	if err := tx.First(&state, model.PlatformStateId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 平台状态未初始化", ErrNotFound)
		}
		return nil, err
	}
	return &state, nil
}

// loadProject 按ID读取项目
func loadProject(tx *gorm.DB, projectId int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := tx.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 项目 %d", ErrNotFound, projectId)
		}
		return nil, err
	}
	return &project, nil
}

// loadMilestone 按 (项目ID, 里程碑编号) 读取里程碑
func loadMilestone(tx *gorm.DB, projectId, milestoneId int64) (*model.MilestoneModel, error) {
	var milestone model.MilestoneModel
	err := tx.Where("project_id = ? AND milestone_id = ?", projectId, milestoneId).
		First(&milestone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 里程碑 %d/%d", ErrNotFound, projectId, milestoneId)
		}
		return nil, err
	}
	return &milestone, nil
}

// validateText 校验非空且不超长的文本字段
//
// 长度上限按字符数计，多字节文本不受字节数影响。
func validateText(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%w: %s不能为空", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s超过最大长度 %d", ErrInvalidInput, field, maxLen)
	}
	return nil
}
