package router

import (
	"github.com/Hagukwe/Green-grant/internal/chain"
	"github.com/Hagukwe/Green-grant/internal/config"
	"github.com/Hagukwe/Green-grant/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, chainClient chain.Chain, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(callerMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "green-grant",
		})
	})

	escrowAddr := cfg.Chain.EscrowAddress

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(db, chainClient)
		donationHandler := handler.NewDonationHandler(db, chainClient, escrowAddr)
		milestoneHandler := handler.NewMilestoneHandler(db, chainClient, escrowAddr)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.RegisterProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id/status", projectHandler.UpdateProjectStatus)
			projects.DELETE("/:id", projectHandler.CancelProject)
			projects.GET("/:id/progress", projectHandler.GetFundingProgress)
			projects.GET("/:id/owner", projectHandler.IsProjectOwner)

			projects.POST("/:id/donations", donationHandler.Donate)
			projects.GET("/:id/donations", donationHandler.GetProjectDonations)
			projects.GET("/:id/donations/:address", donationHandler.GetDonation)

			projects.POST("/:id/milestones", milestoneHandler.AddMilestone)
			projects.GET("/:id/milestones", milestoneHandler.GetProjectMilestones)
			projects.GET("/:id/milestones/:mid", milestoneHandler.GetMilestone)
			projects.POST("/:id/milestones/:mid/verify", milestoneHandler.VerifyMilestone)
			projects.POST("/:id/milestones/:mid/release", milestoneHandler.ReleaseMilestoneFunds)
			projects.GET("/:id/milestones/:mid/release", milestoneHandler.GetRelease)
		}

		// 批量验证
		v1.POST("/milestones/batch-verify", milestoneHandler.BatchVerifyMilestones)

		// 捐赠人统计
		v1.GET("/donors/:address/stats", donationHandler.GetDonorStats)

		// 平台管理路由
		adminHandler := handler.NewAdminHandler(db, chainClient, escrowAddr)
		platform := v1.Group("/platform")
		{
			platform.GET("/funds", adminHandler.GetPlatformFunds)
			platform.GET("/stats", adminHandler.GetPlatformStats)
			platform.POST("/transfer-ownership", adminHandler.TransferOwnership)
			platform.POST("/emergency-withdraw", adminHandler.EmergencyWithdraw)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// 调用方身份中间件
//
// 网关层完成认证后把调用方地址放入 X-Caller-Address 头；
// 这里只负责透传到上下文，鉴权由业务层比对存储的所有者/角色字段完成。
func callerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if addr := c.GetHeader("X-Caller-Address"); addr != "" {
			c.Set(handler.CallerAddressKey, addr)
		}
		c.Next()
	}
}
