package respond

// CreateRelationshipsRespond 批量发起邀请响应
// 部分成功时 Created 和 Unresolved 同时非空
// 使用位置:
//   - internal/service/relationship/service.go: CreateRelationships
type CreateRelationshipsRespond struct {
	Created []RelationshipRespond `json:"created"`
	// Unresolved 未能建立关系的目标（不存在的用户名、已有关系等）
	Unresolved []string `json:"unresolved"`
}
