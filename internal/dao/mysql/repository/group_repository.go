package repository

import (
	"huoban_contact_server/internal/model"

	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建分组 Repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 根据 UUID 查找分组
func (r *groupRepository) FindByUuid(uuid string) (*model.ContactGroup, error) {
	var group model.ContactGroup
	if err := r.db.Where("uuid = ?", uuid).First(&group).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询分组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByOwner 查找用户的所有分组
func (r *groupRepository) FindByOwner(ownerName string) ([]model.ContactGroup, error) {
	var groups []model.ContactGroup
	if err := r.db.Where("owner_name = ?", ownerName).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户分组 owner=%s", ownerName)
	}
	return groups, nil
}

// FindByOwnerSince 查找用户指定时间戳之后修改过的分组
func (r *groupRepository) FindByOwnerSince(ownerName string, since int64) ([]model.ContactGroup, error) {
	var groups []model.ContactGroup
	if err := r.db.Where("owner_name = ? AND mod_date > ?", ownerName, since).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户增量分组 owner=%s since=%d", ownerName, since)
	}
	return groups, nil
}

// Create 创建新分组
func (r *groupRepository) Create(group *model.ContactGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建分组")
	}
	return nil
}

// Update 整体更新分组
func (r *groupRepository) Update(group *model.ContactGroup) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBError(err, "更新分组")
	}
	return nil
}

// UpdateFields 按 UUID 更新指定字段
func (r *groupRepository) UpdateFields(uuid string, updates map[string]interface{}) error {
	if err := r.db.Model(&model.ContactGroup{}).Where("uuid = ?", uuid).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新分组字段 uuid=%s", uuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除分组
func (r *groupRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.ContactGroup{}).Error; err != nil {
		return wrapDBErrorf(err, "删除分组 uuid=%s", uuid)
	}
	return nil
}
