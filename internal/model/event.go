package model

import (
	"gorm.io/gorm"
)

// Event 关系上的待处理事件（好友请求、接受通知、状态请求等）
// 事件挂在关系的某一侧，表示"该侧用户有一条待看的事件"
type Event struct {
	gorm.Model
	Uuid             string `gorm:"column:uuid;uniqueIndex;type:char(24);not null;comment:事件唯一id"`
	RelationshipUuid string `gorm:"column:relationship_uuid;index;type:char(24);not null;comment:关系uuid"`
	// Side 事件挂在关系的哪一侧（owner/receiver）
	Side string `gorm:"column:side;type:varchar(10);not null;comment:关系侧"`
	Type int8   `gorm:"column:type;not null;comment:事件类型，1.请求，2.接受，3.状态请求，4.加入，5.取消加入"`
	// ModDate 事件产生时间（Unix 毫秒）
	ModDate int64 `gorm:"column:mod_date;index;not null;comment:产生时间戳(毫秒)"`
}

func (Event) TableName() string {
	return "event"
}
