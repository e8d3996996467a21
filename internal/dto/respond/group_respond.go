package respond

// GroupRespond 联系人分组视图
// 使用位置:
//   - internal/service/group/service.go
//   - internal/service/sync/service.go: GetDatabase
type GroupRespond struct {
	Uuid  string `json:"uuid"`
	Title string `json:"title"`
	// RelOrder 组内关系的展示顺序
	RelOrder []string `json:"rel_order"`
	ModDate  int64    `json:"mod_date"`
}
