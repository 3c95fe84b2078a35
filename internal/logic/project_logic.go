package logic

import (
	"fmt"
	"math/big"

	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db *gorm.DB
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// RegisterProject 注册项目
//
// 调用方成为项目发起人，项目ID按注册顺序从1递增分配，初始状态为 pending。
func (p *ProjectLogic) RegisterProject(caller string, block int64, title, description, category string, targetAmount int64) (*model.ProjectModel, error) {
	if err := validateText("标题", title, MaxTitleLen); err != nil {
		return nil, err
	}
	if err := validateText("描述", description, MaxDescriptionLen); err != nil {
		return nil, err
	}
	if err := validateText("分类", category, MaxCategoryLen); err != nil {
		return nil, err
	}
	if targetAmount <= 0 {
		return nil, fmt.Errorf("%w: 目标金额必须大于0", ErrInvalidInput)
	}

	project := &model.ProjectModel{
		Title:        title,
		Description:  description,
		Category:     category,
		TargetAmount: targetAmount,
		RaisedAmount: 0,
		Status:       model.ProjectStatusPending,
		OwnerAddress: caller,
		CreatedBlock: block,
	}

	if err := p.db.Create(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateProjectStatus 更新项目状态
//
// 仅发起人可调用；四个枚举值之间的任意迁移（含自迁移）均被允许，
// 状态机不设额外约束。
func (p *ProjectLogic) UpdateProjectStatus(caller string, projectId int64, newStatus model.ProjectStatus) (model.ProjectStatus, error) {
	err := p.db.Transaction(func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.OwnerAddress != caller {
			return fmt.Errorf("%w: 只有发起人可以修改项目状态", ErrUnauthorized)
		}
		if !newStatus.Valid() {
			return fmt.Errorf("%w: 未定义的项目状态 %q", ErrInvalidInput, newStatus)
		}
		return tx.Model(project).Update("status", newStatus).Error
	})
	if err != nil {
		return "", err
	}
	return newStatus, nil
}

// CancelProject 取消项目
func (p *ProjectLogic) CancelProject(caller string, projectId int64) error {
	_, err := p.UpdateProjectStatus(caller, projectId, model.ProjectStatusCancelled)
	return err
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(projectId int64) (*model.ProjectModel, error) {
	return loadProject(p.db, projectId)
}

// GetProjects 获取项目列表（可按状态过滤）
func (p *ProjectLogic) GetProjects(status string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// IsProjectOwner 检查地址是否为项目发起人
func (p *ProjectLogic) IsProjectOwner(projectId int64, address string) (bool, error) {
	project, err := loadProject(p.db, projectId)
	if err != nil {
		return false, err
	}
	return project.OwnerAddress == address, nil
}

// IsFullyFunded 检查项目是否已达到目标金额
func (p *ProjectLogic) IsFullyFunded(projectId int64) (bool, error) {
	project, err := loadProject(p.db, projectId)
	if err != nil {
		return false, err
	}
	return project.RaisedAmount >= project.TargetAmount, nil
}

// FundingProgress 获取筹款进度百分比（向下取整）
func (p *ProjectLogic) FundingProgress(projectId int64) (int64, error) {
	project, err := loadProject(p.db, projectId)
	if err != nil {
		return 0, err
	}
	if project.TargetAmount <= 0 {
		// 注册校验保证 target > 0
		return 0, fmt.Errorf("%w: 项目目标金额非法", ErrInvalidInput)
	}

	// raised*100 可能超出 int64，用大整数计算
	progress := new(big.Int).Mul(big.NewInt(project.RaisedAmount), big.NewInt(100))
	progress.Quo(progress, big.NewInt(project.TargetAmount))
	if !progress.IsInt64() {
		return 0, fmt.Errorf("%w: 筹款进度超出可表示范围", ErrInvalidInput)
	}
	return progress.Int64(), nil
}

// TotalProjects 获取项目总数
func (p *ProjectLogic) TotalProjects() (int64, error) {
	var total int64
	if err := p.db.Model(&model.ProjectModel{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
