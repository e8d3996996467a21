package respond

// ProfileRespond 联系人对外资料视图
// 只暴露昵称、头像和状态，不暴露手机号邮箱等隐私字段
// 使用位置:
//   - internal/service/sync/service.go: GetDatabase
type ProfileRespond struct {
	Username      string `json:"username"`
	Nickname      string `json:"nickname"`
	Avatar        string `json:"avatar"`
	Action        string `json:"action"`
	Place         string `json:"place"`
	StatusModDate int64  `json:"status_mod_date"`
}
