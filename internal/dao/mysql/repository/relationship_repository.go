package repository

import (
	"huoban_contact_server/internal/model"

	"gorm.io/gorm"
)

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository 创建关系 Repository
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

// FindByUuid 根据 UUID 查找关系
func (r *relationshipRepository) FindByUuid(uuid string) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.Where("uuid = ?", uuid).First(&rel).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关系 uuid=%s", uuid)
	}
	return &rel, nil
}

// FindByUuids 批量根据 UUID 查找关系
func (r *relationshipRepository) FindByUuids(uuids []string) ([]model.Relationship, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var rels []model.Relationship
	if err := r.db.Where("uuid IN ?", uuids).Find(&rels).Error; err != nil {
		return nil, wrapDBError(err, "批量查询关系")
	}
	return rels, nil
}

// FindByUser 查找用户参与的所有关系
func (r *relationshipRepository) FindByUser(username string) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("owner_name = ? OR receiver_name = ?", username, username).Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户关系 username=%s", username)
	}
	return rels, nil
}

// FindBetween 查找两个用户之间的关系（不分方向）
func (r *relationshipRepository) FindBetween(a, b string) (*model.Relationship, error) {
	var rel model.Relationship
	if err := r.db.Where("(owner_name = ? AND receiver_name = ?) OR (owner_name = ? AND receiver_name = ?)", a, b, b, a).First(&rel).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询双方关系 a=%s b=%s", a, b)
	}
	return &rel, nil
}

// FindByInviteEmail 查找挂在指定邀请邮箱上的关系
func (r *relationshipRepository) FindByInviteEmail(email string) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.Where("invite_email = ?", email).Find(&rels).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询邀请关系 email=%s", email)
	}
	return rels, nil
}

// Create 创建新关系
func (r *relationshipRepository) Create(rel *model.Relationship) error {
	if err := r.db.Create(rel).Error; err != nil {
		return wrapDBError(err, "创建关系")
	}
	return nil
}

// Update 整体更新关系
func (r *relationshipRepository) Update(rel *model.Relationship) error {
	if err := r.db.Save(rel).Error; err != nil {
		return wrapDBError(err, "更新关系")
	}
	return nil
}

// UpdateFields 按 UUID 更新指定字段
func (r *relationshipRepository) UpdateFields(uuid string, updates map[string]interface{}) error {
	if err := r.db.Model(&model.Relationship{}).Where("uuid = ?", uuid).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新关系字段 uuid=%s", uuid)
	}
	return nil
}
