package request

// InitializeUserRequest 联系人初始化请求
// 首次登录时调用，预置默认分组并绑定注册前收到的邮箱邀请
// 使用位置:
//   - internal/handler/sync_handler.go: InitializeUserHandler
//   - internal/service/sync/service.go: InitializeUser
type InitializeUserRequest struct {
	// Email 可选，传入时绑定挂在该邮箱上的邀请
	Email string `json:"email" binding:"omitempty,email"`
}
