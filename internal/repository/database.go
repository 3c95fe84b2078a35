package repository

import (
	"fmt"

	"github.com/Hagukwe/Green-grant/internal/config"
	"github.com/Hagukwe/Green-grant/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Init 初始化数据库连接并迁移表结构
//
// 账本的跨表不变量（平台余额与各项目金额）要求变更操作串行化，
// 因此会话默认隔离级别设置为 serializable。
func Init(cfg config.DatabaseConfig, platformCfg config.PlatformConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s options='-c default_transaction_isolation=serializable'",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 自动迁移
	if err := Migrate(db); err != nil {
		return nil, err
	}

	// 初始化平台状态单例行
	if err := SeedPlatformState(db, platformCfg.OwnerAddress); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 迁移账本表结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ProjectModel{},
		&model.MilestoneModel{},
		&model.DonationModel{},
		&model.DonorStatsModel{},
		&model.ReleaseRecordModel{},
		&model.PlatformStateModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedPlatformState 写入平台状态单例行（已存在时不覆盖）
func SeedPlatformState(db *gorm.DB, ownerAddress string) error {
	state := model.PlatformStateModel{
		Id:           model.PlatformStateId,
		OwnerAddress: ownerAddress,
		TotalFunds:   0,
	}
	if err := db.Where("id = ?", model.PlatformStateId).FirstOrCreate(&state).Error; err != nil {
		return fmt.Errorf("failed to seed platform state: %w", err)
	}
	return nil
}
