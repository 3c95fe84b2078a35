package logic

import (
	"context"
	"fmt"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/gorm"
)

// AdminLogic 平台管理业务逻辑
type AdminLogic struct {
	db         *gorm.DB
	transfer   chain.Transferrer
	escrowAddr string
}

// NewAdminLogic 创建平台管理业务逻辑
func NewAdminLogic(db *gorm.DB, transfer chain.Transferrer, escrowAddr string) *AdminLogic {
	return &AdminLogic{db: db, transfer: transfer, escrowAddr: escrowAddr}
}

// TransferOwnership 转移平台管理员（验证人角色）
func (a *AdminLogic) TransferOwnership(caller, newOwner string) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		state, err := loadPlatformState(tx)
		if err != nil {
			return err
		}
		if state.OwnerAddress != caller {
			return fmt.Errorf("%w: 只有当前管理员可以转移所有权", ErrUnauthorized)
		}
		if newOwner == "" {
			return fmt.Errorf("%w: 新管理员地址不能为空", ErrInvalidInput)
		}
		return tx.Model(state).Update("owner_address", newOwner).Error
	})
}

// EmergencyWithdraw 紧急提取托管资金
//
// 绕过项目与里程碑层面的全部检查，仅受平台余额约束；
// 资金转给当前管理员本人。
func (a *AdminLogic) EmergencyWithdraw(ctx context.Context, caller string, amount int64) (int64, error) {
	err := a.db.Transaction(func(tx *gorm.DB) error {
		state, err := loadPlatformState(tx)
		if err != nil {
			return err
		}
		if state.OwnerAddress != caller {
			return fmt.Errorf("%w: 只有当前管理员可以紧急提取", ErrUnauthorized)
		}
		if amount <= 0 {
			return fmt.Errorf("%w: 提取金额必须大于0", ErrInvalidInput)
		}
		if amount > state.TotalFunds {
			return fmt.Errorf("%w: 平台余额 %d，申请提取 %d",
				ErrInsufficientFunds, state.TotalFunds, amount)
		}

		if err := a.transfer.Transfer(ctx, a.escrowAddr, caller, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		return tx.Model(state).
			Update("total_funds", gorm.Expr("total_funds - ?", amount)).Error
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// PlatformFunds 获取平台托管余额
func (a *AdminLogic) PlatformFunds() (int64, error) {
	state, err := loadPlatformState(a.db)
	if err != nil {
		return 0, err
	}
	return state.TotalFunds, nil
}

// PlatformOwner 获取当前平台管理员地址
func (a *AdminLogic) PlatformOwner() (string, error) {
	state, err := loadPlatformState(a.db)
	if err != nil {
		return "", err
	}
	return state.OwnerAddress, nil
}

// PlatformStats 获取平台聚合统计信息
func (a *AdminLogic) PlatformStats() (map[string]interface{}, error) {
	state, err := loadPlatformState(a.db)
	if err != nil {
		return nil, err
	}

	var totalProjects int64
	if err := a.db.Model(&model.ProjectModel{}).Count(&totalProjects).Error; err != nil {
		return nil, err
	}

	// 各状态项目数量
	statusCounts := make(map[string]int64)
	for _, status := range []model.ProjectStatus{
		model.ProjectStatusPending,
		model.ProjectStatusActive,
		model.ProjectStatusCompleted,
		model.ProjectStatusCancelled,
	} {
		var count int64
		if err := a.db.Model(&model.ProjectModel{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		statusCounts[string(status)] = count
	}

	// 累计筹款总额
	var totalRaised int64
	if err := a.db.Model(&model.ProjectModel{}).
		Select("COALESCE(SUM(raised_amount), 0)").
		Scan(&totalRaised).Error; err != nil {
		return nil, err
	}

	// 捐赠人总数（去重）
	var totalDonors int64
	if err := a.db.Model(&model.DonationModel{}).
		Distinct("donor_address").
		Count(&totalDonors).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"totalProjects": totalProjects,
		"statusCounts":  statusCounts,
		"totalRaised":   totalRaised,
		"totalDonors":   totalDonors,
		"platformFunds": state.TotalFunds,
		"ownerAddress":  state.OwnerAddress,
	}, nil
}
