package request

// UpdateUserRequest 更新用户资料请求
// GroupOrder 必须是现有分组集合的一个排列，否则拒绝
// 使用位置:
//   - internal/handler/sync_handler.go: UpdateUserHandler
//   - internal/service/sync/service.go: UpdateUser
type UpdateUserRequest struct {
	Nickname   string   `json:"nickname" binding:"omitempty,max=50"`
	Avatar     string   `json:"avatar" binding:"omitempty,max=255"`
	GroupOrder []string `json:"group_order"`
}
