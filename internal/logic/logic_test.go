package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/Hagukwe/Green-grant/internal/model"
	"github.com/Hagukwe/Green-grant/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	testVerifier = "0xVerifier"
	testEscrow   = "0xEscrow"
	testOwner    = "0xOwner"
	testDonor    = "0xDonor"
	testDonor2   = "0xDonor2"
)

type transferCall struct {
	from   string
	to     string
	amount int64
}

// fakeTransferrer 记录转账调用，可切换为失败模式
type fakeTransferrer struct {
	failNext bool
	calls    []transferCall
}

func (f *fakeTransferrer) Transfer(_ context.Context, from, to string, amount int64) error {
	if f.failNext {
		return errors.New("rpc unavailable")
	}
	f.calls = append(f.calls, transferCall{from: from, to: to, amount: amount})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	require.NoError(t, repository.SeedPlatformState(db, testVerifier))
	return db
}

// registerProject 注册一个测试项目
func registerProject(t *testing.T, db *gorm.DB, owner string, target int64) *model.ProjectModel {
	t.Helper()
	p := NewProjectLogic(db)
	project, err := p.RegisterProject(owner, 100,
		"清洁水源计划", "为山区村庄修建净水设施并维护三年", "environment", target)
	require.NoError(t, err)
	return project
}

// registerActiveProject 注册并激活一个测试项目
func registerActiveProject(t *testing.T, db *gorm.DB, owner string, target int64) *model.ProjectModel {
	t.Helper()
	project := registerProject(t, db, owner, target)
	_, err := NewProjectLogic(db).UpdateProjectStatus(owner, project.Id, model.ProjectStatusActive)
	require.NoError(t, err)
	project.Status = model.ProjectStatusActive
	return project
}

func platformFunds(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var state model.PlatformStateModel
	require.NoError(t, db.First(&state, model.PlatformStateId).Error)
	return state.TotalFunds
}
