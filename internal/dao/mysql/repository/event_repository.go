package repository

import (
	"huoban_contact_server/internal/model"

	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建事件 Repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// FindByUuid 根据 UUID 查找事件
func (r *eventRepository) FindByUuid(uuid string) (*model.Event, error) {
	var event model.Event
	if err := r.db.Where("uuid = ?", uuid).First(&event).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询事件 uuid=%s", uuid)
	}
	return &event, nil
}

// FindByUuids 批量根据 UUID 查找事件
func (r *eventRepository) FindByUuids(uuids []string) ([]model.Event, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var events []model.Event
	if err := r.db.Where("uuid IN ?", uuids).Find(&events).Error; err != nil {
		return nil, wrapDBError(err, "批量查询事件")
	}
	return events, nil
}

// FindByRelationshipSide 查找挂在关系某一侧的事件
func (r *eventRepository) FindByRelationshipSide(relationshipUuid, side string) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.Where("relationship_uuid = ? AND side = ?", relationshipUuid, side).Find(&events).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关系事件 rel=%s side=%s", relationshipUuid, side)
	}
	return events, nil
}

// FindByRelationshipUuids 批量查找多段关系上的事件
func (r *eventRepository) FindByRelationshipUuids(relationshipUuids []string) ([]model.Event, error) {
	if len(relationshipUuids) == 0 {
		return nil, nil
	}
	var events []model.Event
	if err := r.db.Where("relationship_uuid IN ?", relationshipUuids).Find(&events).Error; err != nil {
		return nil, wrapDBError(err, "批量查询关系事件")
	}
	return events, nil
}

// Create 创建事件
func (r *eventRepository) Create(event *model.Event) error {
	if err := r.db.Create(event).Error; err != nil {
		return wrapDBError(err, "创建事件")
	}
	return nil
}

// SoftDeleteByUuids 批量软删除事件
func (r *eventRepository) SoftDeleteByUuids(uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Delete(&model.Event{}).Error; err != nil {
		return wrapDBError(err, "批量删除事件")
	}
	return nil
}

// SoftDeleteByRelationship 删除关系上的全部事件
func (r *eventRepository) SoftDeleteByRelationship(relationshipUuid string) error {
	if err := r.db.Where("relationship_uuid = ?", relationshipUuid).
		Delete(&model.Event{}).Error; err != nil {
		return wrapDBErrorf(err, "删除关系全部事件 rel=%s", relationshipUuid)
	}
	return nil
}

// SoftDeleteByRelationshipSideAndType 删除关系某一侧指定类型的事件
func (r *eventRepository) SoftDeleteByRelationshipSideAndType(relationshipUuid, side string, eventType int8) error {
	if err := r.db.Where("relationship_uuid = ? AND side = ? AND type = ?", relationshipUuid, side, eventType).
		Delete(&model.Event{}).Error; err != nil {
		return wrapDBErrorf(err, "删除关系侧事件 rel=%s side=%s type=%d", relationshipUuid, side, eventType)
	}
	return nil
}
