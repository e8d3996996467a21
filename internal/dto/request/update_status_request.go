package request

// UpdateStatusRequest 更新用户状态请求
// 使用位置:
//   - internal/handler/sync_handler.go: UpdateStatusHandler
//   - internal/service/sync/service.go: UpdateStatus
type UpdateStatusRequest struct {
	Action string `json:"action" binding:"max=100"`
	Place  string `json:"place" binding:"max=100"`
}
