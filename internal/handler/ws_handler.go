// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接升级
package handler

import (
	"huoban_contact_server/internal/gateway/websocket"

	"github.com/gin-gonic/gin"
)

// WsConnectHandler 建立同步提醒长连接
// GET /ws（需要 JWT 认证）
// 升级为 websocket 后服务端单向推送同步提醒
func WsConnectHandler(c *gin.Context) {
	websocket.NewClientInit(c, currentUsername(c))
}
