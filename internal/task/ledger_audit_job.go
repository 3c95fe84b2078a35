package task

import (
	"sync"
	"time"

	"github.com/Hagukwe/Green-grant/internal/config"
	"github.com/Hagukwe/Green-grant/internal/logger"
	"github.com/Hagukwe/Green-grant/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// LedgerAuditJob 账目核对任务
//
// 只读核对，不修正任何数据：
//   - 平台托管余额应等于累计筹款总额减去累计释放总额；
//   - 每个项目的 raised_amount 应等于该项目全部捐赠记录之和。
//
// raised_amount 在释放后仍保持为累计筹款额，与托管余额的口径不同，
// 差额即为累计释放总额。
type LedgerAuditJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewLedgerAuditJob 创建账目核对任务
func NewLedgerAuditJob(db *gorm.DB, cfg *config.Config) *LedgerAuditJob {
	return &LedgerAuditJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *LedgerAuditJob) GetName() string {
	return "ledger_auditor"
}

// GetSchedule 获取调度配置
func (j *LedgerAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.AuditInterval) * time.Second)
}

// Execute 执行任务
func (j *LedgerAuditJob) Execute() {
	logger.Debug("Starting ledger audit")

	j.auditPlatformFunds()
	j.auditProjectTotals()

	logger.Debug("Ledger audit finished")
}

// auditPlatformFunds 核对平台托管余额
func (j *LedgerAuditJob) auditPlatformFunds() {
	var state model.PlatformStateModel
	if err := j.db.First(&state, model.PlatformStateId).Error; err != nil {
		logger.Error("Ledger audit: failed to load platform state: %v", err)
		return
	}

	var totalRaised int64
	if err := j.db.Model(&model.ProjectModel{}).
		Select("COALESCE(SUM(raised_amount), 0)").
		Scan(&totalRaised).Error; err != nil {
		logger.Error("Ledger audit: failed to sum raised amounts: %v", err)
		return
	}

	var totalReleased int64
	if err := j.db.Model(&model.ReleaseRecordModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalReleased).Error; err != nil {
		logger.Error("Ledger audit: failed to sum release amounts: %v", err)
		return
	}

	expected := totalRaised - totalReleased
	if state.TotalFunds != expected {
		logger.Warn("Ledger audit: platform funds mismatch: held=%d raised=%d released=%d expected=%d",
			state.TotalFunds, totalRaised, totalReleased, expected)
	}
	if state.TotalFunds < 0 {
		logger.Error("Ledger audit: platform funds negative: %d", state.TotalFunds)
	}
}

// auditProjectTotals 核对各项目的已筹金额
func (j *LedgerAuditJob) auditProjectTotals() {
	var projects []model.ProjectModel
	if err := j.db.Find(&projects).Error; err != nil {
		logger.Error("Ledger audit: failed to fetch projects: %v", err)
		return
	}
	if len(projects) == 0 {
		return
	}

	poolSize := len(projects)
	if poolSize > 8 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Ledger audit: failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range projects {
		project := projects[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			j.auditProject(project)
		})
		if err != nil {
			wg.Done()
			logger.Error("Ledger audit: failed to submit task: %v", err)
		}
	}
	wg.Wait()
}

// auditProject 核对单个项目
func (j *LedgerAuditJob) auditProject(project model.ProjectModel) {
	var donated int64
	if err := j.db.Model(&model.DonationModel{}).
		Where("project_id = ?", project.Id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&donated).Error; err != nil {
		logger.Error("Ledger audit: failed to sum donations for project %d: %v", project.Id, err)
		return
	}

	if donated != project.RaisedAmount {
		logger.Warn("Ledger audit: project %d raised mismatch: raised=%d donations=%d",
			project.Id, project.RaisedAmount, donated)
	}
}
