package respond

// UpdateRelationshipsRespond 批量更新关系状态响应
// 使用位置:
//   - internal/service/relationship/service.go: UpdateRelationships
type UpdateRelationshipsRespond struct {
	Updated []RelationshipRespond `json:"updated"`
	// Unresolved 未能更新的关系 uuid（不存在、无权限、非法状态等）
	Unresolved []string `json:"unresolved"`
}
