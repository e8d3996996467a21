package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: RegisterHandler
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=2,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Nickname  string `json:"nickname"`
	Telephone string `json:"telephone"`
	Email     string `json:"email" binding:"omitempty,email"`
}
