// Package handler 提供 HTTP 请求处理器
// 本文件处理联系人分组相关的 API 请求
package handler

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateNewGroupHandler 创建分组
// POST /group/createNewGroup
// 请求体: request.CreateNewGroupRequest
// 响应: respond.CreateNewGroupRespond（部分失败返回 CodePartialFailure）
func CreateNewGroupHandler(c *gin.Context) {
	var req request.CreateNewGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Group.CreateNewGroup(currentUsername(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandlePartial(c, data, data.Unresolved)
}

// UpdateGroupHandler 更新分组标题和成员排序
// POST /group/updateGroup
// 请求体: request.UpdateGroupRequest
// 响应: respond.GroupRespond
func UpdateGroupHandler(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Group.UpdateGroup(currentUsername(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteGroupHandler 删除分组
// POST /group/deleteGroup
// 请求体: request.DeleteGroupRequest
// 响应: nil
func DeleteGroupHandler(c *gin.Context) {
	var req request.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Group.DeleteGroup(currentUsername(c), req.Uuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
