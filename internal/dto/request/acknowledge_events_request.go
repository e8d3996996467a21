package request

// AcknowledgeEventsRequest 确认事件已读请求
// 被确认的事件从事件列表中删除
// 使用位置:
//   - internal/handler/event_handler.go: AcknowledgeEventsHandler
//   - internal/service/event/service.go: AcknowledgeEvents
type AcknowledgeEventsRequest struct {
	EventUuids []string `json:"event_uuids" binding:"required,min=1"`
}
