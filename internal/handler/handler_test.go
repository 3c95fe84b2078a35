package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hagukwe/Green-grant/internal/config"
	"github.com/Hagukwe/Green-grant/internal/repository"
	"github.com/Hagukwe/Green-grant/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	verifierAddr = "0xVerifier"
	escrowAddr   = "0xEscrow"
	ownerAddr    = "0xOwner"
	donorAddr    = "0xDonor"
)

// fakeChain 固定步进的区块时钟加可控转账
type fakeChain struct {
	block        int64
	failTransfer bool
}

func (f *fakeChain) Transfer(_ context.Context, from, to string, amount int64) error {
	if f.failTransfer {
		return errors.New("rpc unavailable")
	}
	return nil
}

func (f *fakeChain) LatestBlock(_ context.Context) (int64, error) {
	f.block++
	return f.block, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeChain) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	require.NoError(t, repository.SeedPlatformState(db, verifierAddr))

	cfg := &config.Config{}
	cfg.Chain.EscrowAddress = escrowAddr

	chainClient := &fakeChain{block: 100}
	return router.Setup(db, chainClient, cfg), chainClient
}

func doRequest(t *testing.T, r *gin.Engine, method, path, caller string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestRegisterProjectRequiresCaller(t *testing.T) {
	r, _ := setupRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/projects", "", map[string]interface{}{
		"title":         "社区花园",
		"description":   "改造闲置空地",
		"category":      "environment",
		"target_amount": 10000,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	r, _ := setupRouter(t)

	// 注册项目
	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/projects", ownerAddr, map[string]interface{}{
		"title":         "社区花园",
		"description":   "改造闲置空地",
		"category":      "environment",
		"target_amount": 10000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["id"])

	// 非发起人不能改状态
	w, _ = doRequest(t, r, http.MethodPut, "/api/v1/projects/1/status", donorAddr, map[string]interface{}{
		"status": "active",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doRequest(t, r, http.MethodPut, "/api/v1/projects/1/status", ownerAddr, map[string]interface{}{
		"status": "active",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 捐赠
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/donations", donorAddr, map[string]interface{}{
		"amount": 6000,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 里程碑创建、验证、释放
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/milestones", ownerAddr, map[string]interface{}{
		"milestone_id": 1,
		"title":        "一期工程",
		"description":  "平整土地",
		"amount":       3000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 未验证先释放
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/milestones/1/release", verifierAddr, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/milestones/1/verify", verifierAddr, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/milestones/1/release", verifierAddr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3000), data["amount_released"])

	// 平台余额
	w, resp = doRequest(t, r, http.MethodGet, "/api/v1/platform/funds", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3000), data["platform_funds"])
}

func TestErrorMappingOverHTTP(t *testing.T) {
	r, chainClient := setupRouter(t)

	// 未知项目
	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/projects/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 无效路径参数
	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/projects/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 转账失败映射为网关错误
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects", ownerAddr, map[string]interface{}{
		"title":         "社区花园",
		"description":   "改造闲置空地",
		"category":      "environment",
		"target_amount": 10000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	chainClient.failTransfer = true
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/projects/1/donations", donorAddr, map[string]interface{}{
		"amount": 100,
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// 未知捐赠人统计返回零值
	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/donors/0xNobody/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total_donated"])
	assert.Equal(t, float64(0), data["projects_supported"])
}
