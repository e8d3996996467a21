package respond

// UserRespond 用户自身资料视图
// 使用位置:
//   - internal/service/sync/service.go: GetDatabase, UpdateUser
type UserRespond struct {
	Username      string   `json:"username"`
	Nickname      string   `json:"nickname"`
	Avatar        string   `json:"avatar"`
	Action        string   `json:"action"`
	Place         string   `json:"place"`
	GroupOrder    []string `json:"group_order"`
	UserModDate   int64    `json:"user_mod_date"`
	StatusModDate int64    `json:"status_mod_date"`
	GroupsModDate int64    `json:"groups_mod_date"`
}
