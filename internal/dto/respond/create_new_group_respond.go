package respond

// CreateNewGroupRespond 创建分组响应
// 使用位置:
//   - internal/service/group/service.go: CreateNewGroup
type CreateNewGroupRespond struct {
	Group GroupRespond `json:"group"`
	// Unresolved 提交中未能处理的关系 uuid（未知关系、非本人关系等）
	Unresolved []string `json:"unresolved"`
}
