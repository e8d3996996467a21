// Package router 提供 HTTP 路由注册
// 本文件定义初始化、增量同步和用户资料相关的路由
package router

import (
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterSyncRoutes 注册同步相关路由
func RegisterSyncRoutes(r *gin.Engine) {
	syncGroup := r.Group("/sync")
	syncGroup.Use(middleware.JWTAuth())
	{
		// POST /sync/initializeUser - 联系人初始化
		syncGroup.POST("/initializeUser", handler.InitializeUserHandler)
		// POST /sync/bindInvites - 邮箱邀请绑定
		syncGroup.POST("/bindInvites", handler.BindInvitesHandler)
		// POST /sync/getDatabase - 增量同步
		syncGroup.POST("/getDatabase", handler.GetDatabaseHandler)
		// POST /sync/updateUser - 更新资料与分组排序
		syncGroup.POST("/updateUser", handler.UpdateUserHandler)
		// POST /sync/updateStatus - 更新状态
		syncGroup.POST("/updateStatus", handler.UpdateStatusHandler)
	}
}
