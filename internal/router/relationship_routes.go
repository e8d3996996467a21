// Package router 提供 HTTP 路由注册
// 本文件定义关系状态相关的路由
package router

import (
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRelationshipRoutes 注册关系相关路由
func RegisterRelationshipRoutes(r *gin.Engine) {
	relationshipGroup := r.Group("/relationship")
	relationshipGroup.Use(middleware.JWTAuth())
	{
		// POST /relationship/createRelationships - 批量发起好友邀请
		relationshipGroup.POST("/createRelationships", handler.CreateRelationshipsHandler)
		// POST /relationship/updateRelationships - 批量更新己方关系状态
		relationshipGroup.POST("/updateRelationships", handler.UpdateRelationshipsHandler)
	}
}
