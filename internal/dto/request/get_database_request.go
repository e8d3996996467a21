package request

// GetDatabaseRequest 增量同步请求
// LastSyncDate 为上次同步返回的时间戳，0 表示全量拉取
// 使用位置:
//   - internal/handler/sync_handler.go: GetDatabaseHandler
//   - internal/service/sync/service.go: GetDatabase
type GetDatabaseRequest struct {
	LastSyncDate int64 `json:"last_sync_date" binding:"min=0"`
}
