// Package rel_type_enum 定义关系单侧状态
// 双方各自持有一份，互不可写对方的状态
package rel_type_enum

const (
	PENDING int8 = 1 // 待确认（被邀请方初始状态）
	FRIEND  int8 = 2 // 好友
	BLOCKED int8 = 3 // 拉黑
	DELETED int8 = 4 // 删除好友
)

// Valid 判断客户端提交的目标状态是否允许
// 只接受 FRIEND/BLOCKED/DELETED，PENDING 只能由系统在建立关系时写入
func Valid(t int8) bool {
	return t >= FRIEND && t <= DELETED
}
