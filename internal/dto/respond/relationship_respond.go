package respond

// RelationshipRespond 关系视图
// 对端一侧的状态经过可见性收敛：高于好友的状态一律报告为好友，
// 拉黑/删除动作对对方不可见
// 使用位置:
//   - internal/service/relationship/service.go
//   - internal/service/sync/service.go: GetDatabase
type RelationshipRespond struct {
	Uuid           string `json:"uuid"`
	OwnerName      string `json:"owner_name"`
	ReceiverName   string `json:"receiver_name"`
	InviteEmail    string `json:"invite_email,omitempty"`
	TypeByOwner    int8   `json:"type_by_owner"`
	TypeByReceiver int8   `json:"type_by_receiver"`
	// Groups 该关系在查看者侧归属的分组 uuid
	Groups  []string `json:"groups"`
	ModDate int64    `json:"mod_date"`
}
