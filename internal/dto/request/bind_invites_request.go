package request

// BindInvitesRequest 邮箱邀请绑定请求
// 用户在资料中补充新邮箱后调用，认领挂在该邮箱上的历史邀请
// 使用位置:
//   - internal/handler/sync_handler.go: BindInvitesHandler
//   - internal/service/sync/service.go: BindInvites
type BindInvitesRequest struct {
	Email string `json:"email" binding:"required,email"`
}
