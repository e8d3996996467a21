package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	// 新用户初始化时预置的三个分组标题
	SEED_GROUP_FAVORITES     = "Favorites"
	SEED_GROUP_CLOSE_FRIENDS = "Close friends"
	SEED_GROUP_FAMILY        = "Family"
)
