package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/gorm"
)

// DonationLogic 捐赠业务逻辑
type DonationLogic struct {
	db         *gorm.DB
	transfer   chain.Transferrer
	escrowAddr string
}

// NewDonationLogic 创建捐赠业务逻辑
func NewDonationLogic(db *gorm.DB, transfer chain.Transferrer, escrowAddr string) *DonationLogic {
	return &DonationLogic{db: db, transfer: transfer, escrowAddr: escrowAddr}
}

// Donate 向项目捐赠
//
// 转账与五步记账作为一个整体提交：资金先从捐赠人转入托管账户，
// 随后项目已筹金额、捐赠记录、捐赠人统计、平台余额依次更新。
// 任一步失败则全部回退。
func (d *DonationLogic) Donate(ctx context.Context, caller string, block int64, projectId, amount int64) (int64, error) {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		project, err := loadProject(tx, projectId)
		if err != nil {
			return err
		}
		if amount <= 0 {
			return fmt.Errorf("%w: 捐赠金额必须大于0", ErrInvalidInput)
		}
		if !project.Status.AcceptsDonations() {
			return fmt.Errorf("%w: 项目状态 %q 不接受捐赠", ErrInvalidStatus, project.Status)
		}

		// 资金转入托管账户
		if err := d.transfer.Transfer(ctx, caller, d.escrowAddr, amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		// 项目已筹金额
		if err := tx.Model(project).
			Update("raised_amount", gorm.Expr("raised_amount + ?", amount)).Error; err != nil {
			return err
		}

		// 捐赠记录按 (项目, 捐赠人) 累计
		var donation model.DonationModel
		err = tx.Where("project_id = ? AND donor_address = ?", projectId, caller).
			First(&donation).Error
		switch {
		case err == nil:
			if err := tx.Model(&donation).Updates(map[string]interface{}{
				"amount":        gorm.Expr("amount + ?", amount),
				"donated_block": block,
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			donation = model.DonationModel{
				ProjectId:    projectId,
				DonorAddress: caller,
				Amount:       amount,
				DonatedBlock: block,
			}
			if err := tx.Create(&donation).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// 捐赠人全局统计，projects_supported 每次捐赠都加一
		var stats model.DonorStatsModel
		err = tx.Where("donor_address = ?", caller).First(&stats).Error
		switch {
		case err == nil:
			if err := tx.Model(&stats).Updates(map[string]interface{}{
				"total_donated":      gorm.Expr("total_donated + ?", amount),
				"projects_supported": gorm.Expr("projects_supported + 1"),
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			stats = model.DonorStatsModel{
				DonorAddress:      caller,
				TotalDonated:      amount,
				ProjectsSupported: 1,
			}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// 平台托管余额
		return tx.Model(&model.PlatformStateModel{}).
			Where("id = ?", model.PlatformStateId).
			Update("total_funds", gorm.Expr("total_funds + ?", amount)).Error
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}

// GetDonation 获取某捐赠人对某项目的累计捐赠
func (d *DonationLogic) GetDonation(projectId int64, donorAddress string) (*model.DonationModel, error) {
	var donation model.DonationModel
	err := d.db.Where("project_id = ? AND donor_address = ?", projectId, donorAddress).
		First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 捐赠记录 %d/%s", ErrNotFound, projectId, donorAddress)
		}
		return nil, err
	}
	return &donation, nil
}

// GetDonorStats 获取捐赠人全局统计
//
// 未知捐赠人返回零值统计，不报错。
func (d *DonationLogic) GetDonorStats(donorAddress string) (*model.DonorStatsModel, error) {
	var stats model.DonorStatsModel
	err := d.db.Where("donor_address = ?", donorAddress).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.DonorStatsModel{DonorAddress: donorAddress}, nil
		}
		return nil, err
	}
	return &stats, nil
}

// GetProjectDonations 获取项目的捐赠记录列表
func (d *DonationLogic) GetProjectDonations(projectId int64, page, pageSize int) ([]model.DonationModel, int64, error) {
	var donations []model.DonationModel
	var total int64

	if err := d.db.Model(&model.DonationModel{}).
		Where("project_id = ?", projectId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := d.db.Where("project_id = ?", projectId).
		Offset(offset).
		Limit(pageSize).
		Order("donated_block DESC").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}
