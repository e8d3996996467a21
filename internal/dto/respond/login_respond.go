package respond

// LoginRespond 登录响应
// 使用位置:
//   - internal/service/user/service.go: Login, SmsLogin
type LoginRespond struct {
	Username     string `json:"username"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
