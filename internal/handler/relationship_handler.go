// Package handler 提供 HTTP 请求处理器
// 本文件处理关系状态相关的 API 请求
package handler

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/service"

	"github.com/gin-gonic/gin"
)

// currentUsername 从 gin 上下文取 JWT 中间件写入的用户名
func currentUsername(c *gin.Context) string {
	return c.GetString("username")
}

// CreateRelationshipsHandler 批量发起好友邀请
// POST /relationship/createRelationships
// 请求体: request.CreateRelationshipsRequest
// 响应: respond.CreateRelationshipsRespond（部分失败返回 CodePartialFailure）
func CreateRelationshipsHandler(c *gin.Context) {
	var req request.CreateRelationshipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Relationship.CreateRelationships(currentUsername(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePartial(c, data, data.Unresolved)
}

// UpdateRelationshipsHandler 批量更新己方关系状态
// POST /relationship/updateRelationships
// 请求体: request.UpdateRelationshipsRequest
// 响应: respond.UpdateRelationshipsRespond（部分失败返回 CodePartialFailure）
func UpdateRelationshipsHandler(c *gin.Context) {
	var req request.UpdateRelationshipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Relationship.UpdateRelationships(currentUsername(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePartial(c, data, data.Unresolved)
}
