package model

import (
	"gorm.io/gorm"

	"huoban_contact_server/pkg/enum/relationship/rel_side_enum"
)

// Relationship 两个用户之间的关系
// 双方各自持有一份状态，互相只读不可写对方的状态
type Relationship struct {
	gorm.Model
	Uuid         string `gorm:"column:uuid;uniqueIndex;type:char(24);not null;comment:关系唯一id"`
	OwnerName    string `gorm:"column:owner_name;index;type:varchar(50);not null;comment:发起方用户名"`
	ReceiverName string `gorm:"column:receiver_name;index;type:varchar(50);comment:被邀请方用户名"`
	// InviteEmail 被邀请方未注册时记录其邮箱，注册初始化时回填 ReceiverName
	InviteEmail    string `gorm:"column:invite_email;index;type:varchar(60);comment:邀请邮箱"`
	TypeByOwner    int8   `gorm:"column:type_by_owner;not null;comment:发起方状态，1.待确认，2.好友，3.拉黑，4.删除"`
	TypeByReceiver int8   `gorm:"column:type_by_receiver;not null;comment:被邀请方状态，1.待确认，2.好友，3.拉黑，4.删除"`
	// ModDate 关系最后修改时间（Unix 毫秒），增量同步按此过滤
	ModDate int64 `gorm:"column:mod_date;index;not null;comment:修改时间戳(毫秒)"`
}

func (Relationship) TableName() string {
	return "relationship"
}

// SideOf 返回用户在这段关系中的角色，不在关系中返回空串
func (r *Relationship) SideOf(username string) string {
	switch username {
	case r.OwnerName:
		return rel_side_enum.OWNER
	case r.ReceiverName:
		if username != "" {
			return rel_side_enum.RECEIVER
		}
	}
	return ""
}

// TypeBySide 返回指定角色一侧的状态
func (r *Relationship) TypeBySide(side string) int8 {
	if side == rel_side_enum.OWNER {
		return r.TypeByOwner
	}
	return r.TypeByReceiver
}

// PeerName 返回指定角色对侧的用户名
func (r *Relationship) PeerName(side string) string {
	if side == rel_side_enum.OWNER {
		return r.ReceiverName
	}
	return r.OwnerName
}
