// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 按模块分别注册各个路由组
func RegisterRoutes(r *gin.Engine) {
	RegisterAuthRoutes(r)         // 认证路由（注册/登录/Token 刷新）
	RegisterRelationshipRoutes(r) // 关系路由
	RegisterGroupRoutes(r)        // 分组路由
	RegisterEventRoutes(r)        // 事件路由
	RegisterSyncRoutes(r)         // 初始化与增量同步路由
	RegisterWebSocketRoutes(r)    // WebSocket 路由
}
