// Package handler 提供 HTTP 请求处理器
// 本文件处理联系人初始化、增量同步和用户资料相关的 API 请求
package handler

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/service"

	"github.com/gin-gonic/gin"
)

// InitializeUserHandler 联系人初始化
// POST /sync/initializeUser
// 请求体: request.InitializeUserRequest
// 响应: nil
func InitializeUserHandler(c *gin.Context) {
	var req request.InitializeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Sync.InitializeUser(currentUsername(c), req.Email); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// BindInvitesHandler 邮箱邀请绑定
// POST /sync/bindInvites
// 请求体: request.BindInvitesRequest
// 响应: respond.BindInvitesRespond
func BindInvitesHandler(c *gin.Context) {
	var req request.BindInvitesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	bound, err := service.Svc.Sync.BindInvites(currentUsername(c), req.Email)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.BindInvitesRespond{Bound: bound})
}

// GetDatabaseHandler 增量同步
// POST /sync/getDatabase
// 请求体: request.GetDatabaseRequest
// 响应: respond.GetDatabaseRespond
func GetDatabaseHandler(c *gin.Context) {
	var req request.GetDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Sync.GetDatabase(currentUsername(c), req.LastSyncDate)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserHandler 更新资料与分组排序
// POST /sync/updateUser
// 请求体: request.UpdateUserRequest
// 响应: respond.UserRespond
func UpdateUserHandler(c *gin.Context) {
	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Sync.UpdateUser(currentUsername(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateStatusHandler 更新状态两行（动态/位置）
// POST /sync/updateStatus
// 请求体: request.UpdateStatusRequest
// 响应: nil
func UpdateStatusHandler(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Sync.UpdateStatus(currentUsername(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
