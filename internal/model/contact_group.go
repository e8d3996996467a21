package model

import (
	"gorm.io/gorm"
)

// ContactGroup 用户自定义的联系人分组
type ContactGroup struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(24);not null;comment:分组唯一id"`
	OwnerName string `gorm:"column:owner_name;index;type:varchar(50);not null;comment:归属用户名"`
	Title     string `gorm:"column:title;type:varchar(50);not null;comment:分组标题"`
	// RelOrder 分组内关系的展示顺序，元素为关系 uuid
	// 成员资格以 group_filing 表为准，本列只负责排序
	RelOrder StringList `gorm:"column:rel_order;type:json;comment:组内排序"`
	// ModDate 分组最后修改时间（Unix 毫秒）
	ModDate int64 `gorm:"column:mod_date;index;not null;comment:修改时间戳(毫秒)"`
}

func (ContactGroup) TableName() string {
	return "contact_group"
}
