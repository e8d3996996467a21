// Package router 提供 HTTP 路由注册
// 本文件定义联系人分组相关的路由
package router

import (
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册分组相关路由
func RegisterGroupRoutes(r *gin.Engine) {
	groupGroup := r.Group("/group")
	groupGroup.Use(middleware.JWTAuth())
	{
		// POST /group/createNewGroup - 创建分组
		groupGroup.POST("/createNewGroup", handler.CreateNewGroupHandler)
		// POST /group/updateGroup - 更新分组标题与成员排序
		groupGroup.POST("/updateGroup", handler.UpdateGroupHandler)
		// POST /group/deleteGroup - 删除分组
		groupGroup.POST("/deleteGroup", handler.DeleteGroupHandler)
	}
}
