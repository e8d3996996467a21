package respond

// EventRespond 事件视图
// 使用位置:
//   - internal/service/sync/service.go: GetDatabase
type EventRespond struct {
	Uuid             string `json:"uuid"`
	RelationshipUuid string `json:"relationship_uuid"`
	Type             int8   `json:"type"`
	ModDate          int64  `json:"mod_date"`
}
