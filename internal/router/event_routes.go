// Package router 提供 HTTP 路由注册
// 本文件定义事件日志相关的路由
package router

import (
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes 注册事件相关路由
func RegisterEventRoutes(r *gin.Engine) {
	eventGroup := r.Group("/event")
	eventGroup.Use(middleware.JWTAuth())
	{
		// POST /event/createStatusRequest - 请求对方更新状态
		eventGroup.POST("/createStatusRequest", handler.CreateStatusRequestHandler)
		// POST /event/acknowledgeEvents - 确认事件已读
		eventGroup.POST("/acknowledgeEvents", handler.AcknowledgeEventsHandler)
	}
}
