package request

// CreateStatusRequestRequest 请求对方更新状态
// 在对方的事件列表中挂一条状态请求事件
// 使用位置:
//   - internal/handler/event_handler.go: CreateStatusRequestHandler
//   - internal/service/event/service.go: CreateStatusRequest
type CreateStatusRequestRequest struct {
	RelationshipUuid string `json:"relationship_uuid" binding:"required"`
}
