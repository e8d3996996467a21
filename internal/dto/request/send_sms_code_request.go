package request

// SendSmsCodeRequest 发送短信验证码请求
// 使用位置:
//   - internal/handler/user_handler.go: SendSmsCodeHandler
type SendSmsCodeRequest struct {
	Telephone string `json:"telephone" binding:"required"`
}
