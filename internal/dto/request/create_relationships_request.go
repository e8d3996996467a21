package request

// CreateRelationshipsRequest 批量发起好友邀请请求
// 目标可以是已注册用户名，也可以是未注册用户的邮箱
// 使用位置:
//   - internal/handler/relationship_handler.go: CreateRelationshipsHandler
//   - internal/service/relationship/service.go: CreateRelationships
type CreateRelationshipsRequest struct {
	Usernames []string `json:"usernames"`
	Emails    []string `json:"emails" binding:"omitempty,dive,email"`
}
