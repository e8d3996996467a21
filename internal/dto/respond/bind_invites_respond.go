package respond

// BindInvitesRespond 邮箱邀请绑定结果
type BindInvitesRespond struct {
	// Bound 本次认领的邀请数量
	Bound int `json:"bound"`
}
