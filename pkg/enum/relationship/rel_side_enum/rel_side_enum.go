// Package rel_side_enum 定义用户在一段关系中的角色
package rel_side_enum

const (
	OWNER    = "owner"    // 发起方
	RECEIVER = "receiver" // 被邀请方
)

// Peer 返回对侧角色
func Peer(side string) string {
	if side == OWNER {
		return RECEIVER
	}
	return OWNER
}
