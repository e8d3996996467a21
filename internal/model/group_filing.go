package model

import (
	"gorm.io/gorm"
)

// GroupFiling 分组与关系的归档行
// 一行代表"某段关系的某一侧被归入某个分组"
// 按行增删即是原子的入组/出组操作
type GroupFiling struct {
	gorm.Model
	GroupUuid        string `gorm:"column:group_uuid;index;type:char(24);not null;comment:分组uuid"`
	RelationshipUuid string `gorm:"column:relationship_uuid;index;type:char(24);not null;comment:关系uuid"`
	// Side 该归档属于关系的哪一侧（owner/receiver），级联清理时按侧删除
	Side string `gorm:"column:side;type:varchar(10);not null;comment:关系侧，owner或receiver"`
}

func (GroupFiling) TableName() string {
	return "group_filing"
}
