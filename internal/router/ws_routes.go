// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
func RegisterWebSocketRoutes(r *gin.Engine) {
	// GET /ws - 同步提醒长连接（JWT 认证后升级）
	r.GET("/ws", middleware.JWTAuth(), handler.WsConnectHandler)
}
