package repository

import (
	"huoban_contact_server/internal/model"

	"gorm.io/gorm"
)

type filingRepository struct {
	db *gorm.DB
}

// NewFilingRepository 创建分组归档 Repository
func NewFilingRepository(db *gorm.DB) FilingRepository {
	return &filingRepository{db: db}
}

// FindByGroupUuid 查找分组内的所有归档
func (r *filingRepository) FindByGroupUuid(groupUuid string) ([]model.GroupFiling, error) {
	var filings []model.GroupFiling
	if err := r.db.Where("group_uuid = ?", groupUuid).Find(&filings).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询分组归档 group=%s", groupUuid)
	}
	return filings, nil
}

// FindByGroupUuids 批量查找多个分组的归档
func (r *filingRepository) FindByGroupUuids(groupUuids []string) ([]model.GroupFiling, error) {
	if len(groupUuids) == 0 {
		return nil, nil
	}
	var filings []model.GroupFiling
	if err := r.db.Where("group_uuid IN ?", groupUuids).Find(&filings).Error; err != nil {
		return nil, wrapDBError(err, "批量查询分组归档")
	}
	return filings, nil
}

// FindByRelationshipSide 查找关系某一侧的所有归档
func (r *filingRepository) FindByRelationshipSide(relationshipUuid, side string) ([]model.GroupFiling, error) {
	var filings []model.GroupFiling
	if err := r.db.Where("relationship_uuid = ? AND side = ?", relationshipUuid, side).Find(&filings).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关系归档 rel=%s side=%s", relationshipUuid, side)
	}
	return filings, nil
}

// Exists 判断归档行是否存在
func (r *filingRepository) Exists(groupUuid, relationshipUuid, side string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.GroupFiling{}).
		Where("group_uuid = ? AND relationship_uuid = ? AND side = ?", groupUuid, relationshipUuid, side).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "查询归档是否存在 group=%s rel=%s", groupUuid, relationshipUuid)
	}
	return count > 0, nil
}

// Create 创建归档行（入组）
func (r *filingRepository) Create(filing *model.GroupFiling) error {
	if err := r.db.Create(filing).Error; err != nil {
		return wrapDBError(err, "创建分组归档")
	}
	return nil
}

// Delete 删除归档行（出组）
func (r *filingRepository) Delete(groupUuid, relationshipUuid, side string) error {
	if err := r.db.Where("group_uuid = ? AND relationship_uuid = ? AND side = ?", groupUuid, relationshipUuid, side).
		Delete(&model.GroupFiling{}).Error; err != nil {
		return wrapDBErrorf(err, "删除分组归档 group=%s rel=%s", groupUuid, relationshipUuid)
	}
	return nil
}

// DeleteByGroupUuid 删除分组的所有归档
func (r *filingRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.GroupFiling{}).Error; err != nil {
		return wrapDBErrorf(err, "删除分组全部归档 group=%s", groupUuid)
	}
	return nil
}

// DeleteByRelationshipSide 删除关系某一侧的所有归档
func (r *filingRepository) DeleteByRelationshipSide(relationshipUuid, side string) error {
	if err := r.db.Where("relationship_uuid = ? AND side = ?", relationshipUuid, side).
		Delete(&model.GroupFiling{}).Error; err != nil {
		return wrapDBErrorf(err, "删除关系侧归档 rel=%s side=%s", relationshipUuid, side)
	}
	return nil
}
