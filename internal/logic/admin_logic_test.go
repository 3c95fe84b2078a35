package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferOwnership(t *testing.T) {
	db := newTestDB(t)
	a := NewAdminLogic(db, &fakeTransferrer{}, testEscrow)
	m := NewMilestoneLogic(db, &fakeTransferrer{}, testEscrow)
	project := registerActiveProject(t, db, testOwner, 10000)
	_, err := m.AddMilestone(testOwner, project.Id, 1, "一期", "描述", 1000)
	require.NoError(t, err)

	// 非管理员不能转移
	err = a.TransferOwnership(testDonor, "0xNewAdmin")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = a.TransferOwnership(testVerifier, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, a.TransferOwnership(testVerifier, "0xNewAdmin"))

	owner, err := a.PlatformOwner()
	require.NoError(t, err)
	assert.Equal(t, "0xNewAdmin", owner)

	// 旧管理员立即失去验证人角色，新管理员获得
	err = m.VerifyMilestone(testVerifier, 200, project.Id, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
	require.NoError(t, m.VerifyMilestone("0xNewAdmin", 201, project.Id, 1))
}

func TestEmergencyWithdraw(t *testing.T) {
	db := newTestDB(t)
	transfer := &fakeTransferrer{}
	a := NewAdminLogic(db, transfer, testEscrow)
	d := NewDonationLogic(db, transfer, testEscrow)
	project := registerActiveProject(t, db, testOwner, 10000)

	_, err := d.Donate(context.Background(), testDonor, 101, project.Id, 5000)
	require.NoError(t, err)

	// 非管理员不能提取
	_, err = a.EmergencyWithdraw(context.Background(), testDonor, 1000)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.EmergencyWithdraw(context.Background(), testVerifier, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 超出平台余额
	_, err = a.EmergencyWithdraw(context.Background(), testVerifier, 5001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(5000), platformFunds(t, db))

	amount, err := a.EmergencyWithdraw(context.Background(), testVerifier, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), amount)
	assert.Equal(t, int64(3000), platformFunds(t, db))

	// 资金转给管理员本人
	last := transfer.calls[len(transfer.calls)-1]
	assert.Equal(t, transferCall{from: testEscrow, to: testVerifier, amount: 2000}, last)
}

func TestEmergencyWithdrawTransferFailure(t *testing.T) {
	db := newTestDB(t)
	transfer := &fakeTransferrer{}
	a := NewAdminLogic(db, transfer, testEscrow)
	d := NewDonationLogic(db, transfer, testEscrow)
	project := registerActiveProject(t, db, testOwner, 10000)

	_, err := d.Donate(context.Background(), testDonor, 101, project.Id, 5000)
	require.NoError(t, err)

	transfer.failNext = true
	_, err = a.EmergencyWithdraw(context.Background(), testVerifier, 2000)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, int64(5000), platformFunds(t, db))
}

func TestPlatformFundsAndStats(t *testing.T) {
	db := newTestDB(t)
	transfer := &fakeTransferrer{}
	a := NewAdminLogic(db, transfer, testEscrow)
	d := NewDonationLogic(db, transfer, testEscrow)

	funds, err := a.PlatformFunds()
	require.NoError(t, err)
	assert.Equal(t, int64(0), funds)

	project := registerActiveProject(t, db, testOwner, 10000)
	registerProject(t, db, testOwner, 2000)

	_, err = d.Donate(context.Background(), testDonor, 101, project.Id, 1500)
	require.NoError(t, err)
	_, err = d.Donate(context.Background(), testDonor2, 102, project.Id, 500)
	require.NoError(t, err)

	stats, err := a.PlatformStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats["totalProjects"])
	assert.Equal(t, int64(2000), stats["totalRaised"])
	assert.Equal(t, int64(2), stats["totalDonors"])
	assert.Equal(t, int64(2000), stats["platformFunds"])
	assert.Equal(t, testVerifier, stats["ownerAddress"])

	statusCounts, ok := stats["statusCounts"].(map[string]int64)
	require.True(t, ok)
	assert.Equal(t, int64(1), statusCounts["active"])
	assert.Equal(t, int64(1), statusCounts["pending"])
}
