package request

// UpdateGroupRequest 更新联系人分组请求
// Order 为客户端期望的完整组内排序，服务端以此为准做三阶段调和：
// 不在新排序中的成员出组，新出现的合法关系入组，无法识别的 id 丢弃
// 使用位置:
//   - internal/handler/group_handler.go: UpdateGroupHandler
//   - internal/service/group/service.go: UpdateGroup
type UpdateGroupRequest struct {
	Uuid  string `json:"uuid" binding:"required"`
	Title string `json:"title" binding:"omitempty,max=50"`
	// Order 为 nil 时不调整成员，仅改标题
	Order []string `json:"order"`
}
