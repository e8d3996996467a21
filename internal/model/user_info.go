// Package model 定义数据库实体模型
// 本文件定义用户信息模型，包含用户基本资料、认证信息和同步时间戳
package model

import (
	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Username 用户名，联系人体系内的业务主键
	// 关系和分组都以用户名关联
	Username string `gorm:"column:username;uniqueIndex;type:varchar(50);not null;comment:用户名"`

	// Nickname 用户昵称
	Nickname string `gorm:"column:nickname;type:varchar(50);comment:昵称"`

	// Telephone 手机号码
	// 用于验证码登录，建立索引加速查询
	Telephone string `gorm:"column:telephone;index;type:char(11);comment:电话"`

	// Email 邮箱地址
	// 注册前被邀请时，关系通过该邮箱挂起等待绑定
	Email string `gorm:"column:email;index;type:varchar(60);comment:邮箱"`

	// Avatar 用户头像 URL
	Avatar string `gorm:"column:avatar;type:char(255);default:https://cube.elemecdn.com/0/88/03b0d39583f48206768a7534e55bcpng.png;not null;comment:头像"`

	// Action 用户当前动态（状态第一行）
	Action string `gorm:"column:action;type:varchar(100);comment:动态"`

	// Place 用户当前位置（状态第二行）
	Place string `gorm:"column:place;type:varchar(100);comment:位置"`

	// GroupOrder 用户分组的展示顺序，元素为分组 uuid
	GroupOrder StringList `gorm:"column:group_order;type:json;comment:分组排序"`

	// Initialized 是否完成联系人初始化
	// 0=未初始化, 1=已初始化（已预置分组、已绑定邮箱邀请）
	Initialized int8 `gorm:"column:initialized;not null;default:0;comment:是否已初始化，0.否，1.是"`

	// UserModDate 用户资料最后修改时间（Unix 毫秒）
	// 增量同步用，资料或分组排序变化时更新
	UserModDate int64 `gorm:"column:user_mod_date;not null;default:0;comment:资料修改时间戳(毫秒)"`

	// StatusModDate 状态最后修改时间（Unix 毫秒）
	StatusModDate int64 `gorm:"column:status_mod_date;not null;default:0;comment:状态修改时间戳(毫秒)"`

	// GroupsModDate 分组集合最后修改时间（Unix 毫秒）
	// 任何分组的增删改都会更新，作为分组增量同步的闸门
	GroupsModDate int64 `gorm:"column:groups_mod_date;not null;default:0;comment:分组修改时间戳(毫秒)"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);comment:密码"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
