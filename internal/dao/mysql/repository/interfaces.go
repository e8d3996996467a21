package repository

import (
	"huoban_contact_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户资料和同步时间戳的增删改查操作
type UserRepository interface {
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// FindByUsernames 批量根据用户名查找用户
	FindByUsernames(usernames []string) ([]model.UserInfo, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 整体更新用户信息
	Update(user *model.UserInfo) error
	// UpdateFields 按用户名更新指定字段（时间戳、排序等局部更新）
	UpdateFields(username string, updates map[string]interface{}) error
}

// RelationshipRepository 关系数据访问接口
// 双方状态列只允许通过对应侧的更新方法写入
type RelationshipRepository interface {
	// FindByUuid 根据 UUID 查找关系
	FindByUuid(uuid string) (*model.Relationship, error)
	// FindByUuids 批量根据 UUID 查找关系
	FindByUuids(uuids []string) ([]model.Relationship, error)
	// FindByUser 查找用户参与的所有关系（两侧）
	FindByUser(username string) ([]model.Relationship, error)
	// FindBetween 查找两个用户之间的关系（不分方向）
	FindBetween(a, b string) (*model.Relationship, error)
	// FindByInviteEmail 查找挂在指定邀请邮箱上的关系
	FindByInviteEmail(email string) ([]model.Relationship, error)
	// Create 创建新关系
	Create(rel *model.Relationship) error
	// Update 整体更新关系
	Update(rel *model.Relationship) error
	// UpdateFields 按 UUID 更新指定字段
	UpdateFields(uuid string, updates map[string]interface{}) error
}

// GroupRepository 联系人分组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找分组
	FindByUuid(uuid string) (*model.ContactGroup, error)
	// FindByOwner 查找用户的所有分组
	FindByOwner(ownerName string) ([]model.ContactGroup, error)
	// FindByOwnerSince 查找用户指定时间戳之后修改过的分组
	FindByOwnerSince(ownerName string, since int64) ([]model.ContactGroup, error)
	// Create 创建新分组
	Create(group *model.ContactGroup) error
	// Update 整体更新分组
	Update(group *model.ContactGroup) error
	// UpdateFields 按 UUID 更新指定字段
	UpdateFields(uuid string, updates map[string]interface{}) error
	// SoftDeleteByUuid 软删除分组
	SoftDeleteByUuid(uuid string) error
}

// FilingRepository 分组归档数据访问接口
// 入组/出组按行增删，单行操作天然原子
type FilingRepository interface {
	// FindByGroupUuid 查找分组内的所有归档
	FindByGroupUuid(groupUuid string) ([]model.GroupFiling, error)
	// FindByGroupUuids 批量查找多个分组的归档
	FindByGroupUuids(groupUuids []string) ([]model.GroupFiling, error)
	// FindByRelationshipSide 查找关系某一侧的所有归档
	FindByRelationshipSide(relationshipUuid, side string) ([]model.GroupFiling, error)
	// Exists 判断归档行是否存在
	Exists(groupUuid, relationshipUuid, side string) (bool, error)
	// Create 创建归档行（入组）
	Create(filing *model.GroupFiling) error
	// Delete 删除归档行（出组）
	Delete(groupUuid, relationshipUuid, side string) error
	// DeleteByGroupUuid 删除分组的所有归档（删组时）
	DeleteByGroupUuid(groupUuid string) error
	// DeleteByRelationshipSide 删除关系某一侧的所有归档（级联清理）
	DeleteByRelationshipSide(relationshipUuid, side string) error
}

// EventRepository 事件数据访问接口
type EventRepository interface {
	// FindByUuid 根据 UUID 查找事件
	FindByUuid(uuid string) (*model.Event, error)
	// FindByUuids 批量根据 UUID 查找事件
	FindByUuids(uuids []string) ([]model.Event, error)
	// FindByRelationshipSide 查找挂在关系某一侧的事件
	FindByRelationshipSide(relationshipUuid, side string) ([]model.Event, error)
	// FindByRelationshipUuids 批量查找多段关系上的事件
	FindByRelationshipUuids(relationshipUuids []string) ([]model.Event, error)
	// Create 创建事件
	Create(event *model.Event) error
	// SoftDeleteByUuids 批量软删除事件（确认已读）
	SoftDeleteByUuids(uuids []string) error
	// SoftDeleteByRelationship 删除关系上的全部事件（双侧清空）
	SoftDeleteByRelationship(relationshipUuid string) error
	// SoftDeleteByRelationshipSideAndType 删除关系某一侧指定类型的事件（状态请求去重）
	SoftDeleteByRelationshipSideAndType(relationshipUuid, side string, eventType int8) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	User         UserRepository         // 用户 Repository
	Relationship RelationshipRepository // 关系 Repository
	Group        GroupRepository        // 分组 Repository
	Filing       FilingRepository       // 分组归档 Repository
	Event        EventRepository        // 事件 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
// db: GORM 数据库实例
// 返回: Repositories 聚合指针
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Relationship: NewRelationshipRepository(db),
		Group:        NewGroupRepository(db),
		Filing:       NewFilingRepository(db),
		Event:        NewEventRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
// 返回: 操作错误（如有错误会自动回滚）
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		// 无底层连接（内存实现）时直接执行
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
