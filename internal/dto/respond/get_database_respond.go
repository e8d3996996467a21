package respond

// GetDatabaseRespond 增量同步响应
// 各分区独立按修改时间戳过滤，未变化的分区为空
// 使用位置:
//   - internal/service/sync/service.go: GetDatabase
type GetDatabaseRespond struct {
	// LastSyncDate 本次同步的服务端时间戳，客户端下次同步时回传
	LastSyncDate  int64                 `json:"last_sync_date"`
	User          *UserRespond          `json:"user,omitempty"`
	Relationships []RelationshipRespond `json:"relationships"`
	Groups        []GroupRespond        `json:"groups"`
	Events        []EventRespond        `json:"events"`
	// Profiles 发生变化的联系人对外资料
	Profiles []ProfileRespond `json:"profiles"`
}
