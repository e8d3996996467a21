// Package event_type_enum 定义事件类型
package event_type_enum

const (
	REQUEST        int8 = 1 // 好友请求
	ACCEPT         int8 = 2 // 接受好友请求
	STATUS_REQUEST int8 = 3 // 请求对方更新状态
	JOINING        int8 = 4 // 加入活动
	JOIN_CANCEL    int8 = 5 // 取消加入
)
