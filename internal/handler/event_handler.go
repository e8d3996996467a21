// Package handler 提供 HTTP 请求处理器
// 本文件处理事件日志相关的 API 请求
package handler

import (
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStatusRequestHandler 请求对方更新状态
// POST /event/createStatusRequest
// 请求体: request.CreateStatusRequestRequest
// 响应: nil
func CreateStatusRequestHandler(c *gin.Context) {
	var req request.CreateStatusRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := service.Svc.Event.CreateStatusRequest(currentUsername(c), req.RelationshipUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AcknowledgeEventsHandler 确认事件已读
// POST /event/acknowledgeEvents
// 请求体: request.AcknowledgeEventsRequest
// 响应: []string 实际删除的事件 uuid
func AcknowledgeEventsHandler(c *gin.Context) {
	var req request.AcknowledgeEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	removed, err := service.Svc.Event.AcknowledgeEvents(currentUsername(c), req.EventUuids)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, removed)
}
