package request

// RelationshipUpdate 单条关系状态变更
type RelationshipUpdate struct {
	Uuid string `json:"uuid" binding:"required"`
	// Type 目标状态：2.好友，3.拉黑，4.删除
	Type int8 `json:"type" binding:"required"`
}

// UpdateRelationshipsRequest 批量更新己方关系状态请求
// 使用位置:
//   - internal/handler/relationship_handler.go: UpdateRelationshipsHandler
//   - internal/service/relationship/service.go: UpdateRelationships
type UpdateRelationshipsRequest struct {
	Updates []RelationshipUpdate `json:"updates" binding:"required,min=1,dive"`
}
