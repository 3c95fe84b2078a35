package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/gorm"
)

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	db         *gorm.DB
	transfer   chain.Transferrer
	escrowAddr string
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB, transfer chain.Transferrer, escrowAddr string) *MilestoneLogic {
	return &MilestoneLogic{db: db, transfer: transfer, escrowAddr: escrowAddr}
}

// MilestoneRef 批量验证的里程碑引用
type MilestoneRef struct {
	ProjectId   int64 `json:"project_id" binding:"required"`
	MilestoneId int64 `json:"milestone_id" binding:"required"`
}

// AddMilestone 创建里程碑
//
// 仅项目发起人可调用；里程碑编号由调用方提供，在项目内唯一。
// 里程碑金额不与项目目标金额或已筹金额比对，资金是否充足推迟到释放时检查。
func (m *MilestoneLogic) AddMilestone(caller string, projectId, milestoneId int64, title, description string, amount int64) (int64, error) {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectId)
		if err != nil {
			return err
		}
		if project.OwnerAddress != caller {
			return fmt.Errorf("%w: 只有发起人可以创建里程碑", ErrUnauthorized)
		}
		if milestoneId <= 0 {
			return fmt.Errorf("%w: 里程碑编号必须大于0", ErrInvalidInput)
		}
		if err := validateText("标题", title, MaxTitleLen); err != nil {
			return err
		}
		if err := validateText("描述", description, MaxDescriptionLen); err != nil {
			return err
		}
		if amount <= 0 {
			return fmt.Errorf("%w: 里程碑金额必须大于0", ErrInvalidInput)
		}

		var existing model.MilestoneModel
		err = tx.Where("project_id = ? AND milestone_id = ?", projectId, milestoneId).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: 里程碑 %d/%d", ErrAlreadyExists, projectId, milestoneId)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		milestone := model.MilestoneModel{
			ProjectId:   projectId,
			MilestoneId: milestoneId,
			Title:       title,
			Description: description,
			Amount:      amount,
		}
		return tx.Create(&milestone).Error
	})
	if err != nil {
		return 0, err
	}
	return milestoneId, nil
}

// VerifyMilestone 验证里程碑
//
// 仅平台管理员（验证人角色）可调用；验证是单向操作，重复验证被拒绝。
func (m *MilestoneLogic) VerifyMilestone(caller string, block int64, projectId, milestoneId int64) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return m.verifyInTx(tx, caller, block, projectId, milestoneId)
	})
}

// BatchVerifyMilestones 批量验证里程碑
//
// 所有条目在同一事务内验证：任一条目失败则整批回退，不留下部分验证结果。
// 空列表无事可做，直接成功返回。
func (m *MilestoneLogic) BatchVerifyMilestones(caller string, block int64, refs []MilestoneRef) error {
	if len(refs) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		for _, ref := range refs {
			if err := m.verifyInTx(tx, caller, block, ref.ProjectId, ref.MilestoneId); err != nil {
				return err
			}
		}
		return nil
	})
}

// verifyInTx 在既有事务内执行单个里程碑验证
func (m *MilestoneLogic) verifyInTx(tx *gorm.DB, caller string, block int64, projectId, milestoneId int64) error {
	milestone, err := loadMilestone(tx, projectId, milestoneId)
	if err != nil {
		return err
	}

	state, err := loadPlatformState(tx)
	if err != nil {
		return err
	}
	if state.OwnerAddress != caller {
		return fmt.Errorf("%w: 只有平台验证人可以验证里程碑", ErrUnauthorized)
	}

	if milestone.Verified {
		return fmt.Errorf("%w: 里程碑 %d/%d 已验证", ErrInvalidStatus, projectId, milestoneId)
	}

	return tx.Model(milestone).Updates(map[string]interface{}{
		"verified":         true,
		"verifier_address": caller,
		"verified_block":   block,
	}).Error
}

// ReleaseMilestoneFunds 释放里程碑资金
//
// 前置条件按固定顺序检查，任一失败立即返回对应错误：
// 项目存在 → 里程碑存在 → 调用方持有验证人角色 → 已验证 → 未释放过
// → 项目进行中 → 已筹金额覆盖里程碑金额。全部通过后资金从托管账户
// 转给项目发起人，写入释放记录并扣减平台余额；项目的 raised_amount
// 保持为累计筹款额，不随释放扣减。
func (m *MilestoneLogic) ReleaseMilestoneFunds(ctx context.Context, caller string, block int64, projectId, milestoneId int64) (int64, error) {
	var released int64
	err := m.db.Transaction(func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectId)
		if err != nil {
			return err
		}
		milestone, err := loadMilestone(tx, projectId, milestoneId)
		if err != nil {
			return err
		}
		state, err := loadPlatformState(tx)
		if err != nil {
			return err
		}
		if state.OwnerAddress != caller {
			return fmt.Errorf("%w: 只有平台验证人可以释放资金", ErrUnauthorized)
		}
		if !milestone.Verified {
			return fmt.Errorf("%w: 里程碑 %d/%d", ErrMilestoneNotVerified, projectId, milestoneId)
		}
		if milestone.FundsReleased {
			return fmt.Errorf("%w: 里程碑 %d/%d", ErrAlreadyReleased, projectId, milestoneId)
		}
		if project.Status != model.ProjectStatusActive {
			return fmt.Errorf("%w: 项目状态为 %q", ErrProjectNotActive, project.Status)
		}
		if project.RaisedAmount < milestone.Amount {
			return fmt.Errorf("%w: 已筹 %d，里程碑需要 %d",
				ErrInsufficientFunds, project.RaisedAmount, milestone.Amount)
		}

		// 资金从托管账户转给项目发起人
		if err := m.transfer.Transfer(ctx, m.escrowAddr, project.OwnerAddress, milestone.Amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		if err := tx.Model(milestone).Updates(map[string]interface{}{
			"funds_released": true,
			"released_block": block,
		}).Error; err != nil {
			return err
		}

		record := model.ReleaseRecordModel{
			ProjectId:        projectId,
			MilestoneId:      milestoneId,
			Amount:           milestone.Amount,
			RecipientAddress: project.OwnerAddress,
			ReleasedBy:       caller,
			ReleaseBlock:     block,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.PlatformStateModel{}).
			Where("id = ?", model.PlatformStateId).
			Update("total_funds", gorm.Expr("total_funds - ?", milestone.Amount)).Error; err != nil {
			return err
		}

		released = milestone.Amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// GetMilestone 获取里程碑详情
func (m *MilestoneLogic) GetMilestone(projectId, milestoneId int64) (*model.MilestoneModel, error) {
	return loadMilestone(m.db, projectId, milestoneId)
}

// GetProjectMilestones 获取项目的里程碑列表
func (m *MilestoneLogic) GetProjectMilestones(projectId int64) ([]model.MilestoneModel, error) {
	var milestones []model.MilestoneModel
	err := m.db.Where("project_id = ?", projectId).
		Order("milestone_id ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// GetRelease 获取里程碑的释放记录
func (m *MilestoneLogic) GetRelease(projectId, milestoneId int64) (*model.ReleaseRecordModel, error) {
	var record model.ReleaseRecordModel
	err := m.db.Where("project_id = ? AND milestone_id = ?", projectId, milestoneId).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 释放记录 %d/%d", ErrNotFound, projectId, milestoneId)
		}
		return nil, err
	}
	return &record, nil
}
