// Package mocks 提供数据层和基础设施的内存实现，供单元测试使用
// 行为与 GORM 实现对齐：找不到返回 CodeNotFound，软删除即从存储中摘除
package mocks

import (
	"sync"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/pkg/errorx"
)

// NewRepositories 构造全内存的 Repositories 聚合
// db 为空，Transaction 退化为直接执行
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:         &userRepo{users: make(map[string]*model.UserInfo)},
		Relationship: &relationshipRepo{rels: make(map[string]*model.Relationship)},
		Group:        &groupRepo{groups: make(map[string]*model.ContactGroup)},
		Filing:       &filingRepo{},
		Event:        &eventRepo{events: make(map[string]*model.Event)},
	}
}

func notFound(msg string) error {
	return errorx.New(errorx.CodeNotFound, msg)
}

// ==================== User ====================

type userRepo struct {
	mu    sync.RWMutex
	users map[string]*model.UserInfo
}

func (r *userRepo) FindByUsername(username string) (*model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[username]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, notFound("用户不存在")
}

func (r *userRepo) FindByUsernames(usernames []string) ([]model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.UserInfo, 0, len(usernames))
	for _, username := range usernames {
		if user, ok := r.users[username]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *userRepo) FindByTelephone(telephone string) (*model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if telephone != "" && user.Telephone == telephone {
			cp := *user
			return &cp, nil
		}
	}
	return nil, notFound("用户不存在")
}

func (r *userRepo) FindByEmail(email string) (*model.UserInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if email != "" && user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, notFound("用户不存在")
}

func (r *userRepo) Create(user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return errorx.New(errorx.CodeAlreadyExists, "用户已存在")
	}
	cp := *user
	// 对齐 GORM 行为：保存前触发密码哈希 Hook
	if err := cp.BeforeSave(nil); err != nil {
		return err
	}
	r.users[user.Username] = &cp
	return nil
}

func (r *userRepo) Update(user *model.UserInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; !ok {
		return notFound("用户不存在")
	}
	cp := *user
	if err := cp.BeforeSave(nil); err != nil {
		return err
	}
	r.users[user.Username] = &cp
	return nil
}

func (r *userRepo) UpdateFields(username string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return notFound("用户不存在")
	}
	for field, value := range updates {
		switch field {
		case "nickname":
			user.Nickname = value.(string)
		case "avatar":
			user.Avatar = value.(string)
		case "action":
			user.Action = value.(string)
		case "place":
			user.Place = value.(string)
		case "group_order":
			user.GroupOrder = append(model.StringList{}, value.(model.StringList)...)
		case "initialized":
			user.Initialized = value.(int8)
		case "user_mod_date":
			user.UserModDate = value.(int64)
		case "status_mod_date":
			user.StatusModDate = value.(int64)
		case "groups_mod_date":
			user.GroupsModDate = value.(int64)
		}
	}
	return nil
}

// ==================== Relationship ====================

type relationshipRepo struct {
	mu   sync.RWMutex
	rels map[string]*model.Relationship
}

func (r *relationshipRepo) FindByUuid(uuid string) (*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rel, ok := r.rels[uuid]; ok {
		cp := *rel
		return &cp, nil
	}
	return nil, notFound("关系不存在")
}

func (r *relationshipRepo) FindByUuids(uuids []string) ([]model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Relationship, 0, len(uuids))
	seen := make(map[string]struct{}, len(uuids))
	for _, uuid := range uuids {
		if _, dup := seen[uuid]; dup {
			continue
		}
		seen[uuid] = struct{}{}
		if rel, ok := r.rels[uuid]; ok {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *relationshipRepo) FindByUser(username string) ([]model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Relationship, 0)
	for _, rel := range r.rels {
		if rel.OwnerName == username || (username != "" && rel.ReceiverName == username) {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *relationshipRepo) FindBetween(a, b string) (*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rel := range r.rels {
		if (rel.OwnerName == a && rel.ReceiverName == b) || (rel.OwnerName == b && rel.ReceiverName == a) {
			cp := *rel
			return &cp, nil
		}
	}
	return nil, notFound("关系不存在")
}

func (r *relationshipRepo) FindByInviteEmail(email string) ([]model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Relationship, 0)
	for _, rel := range r.rels {
		if email != "" && rel.InviteEmail == email {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *relationshipRepo) Create(rel *model.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rels[rel.Uuid]; ok {
		return errorx.New(errorx.CodeAlreadyExists, "关系已存在")
	}
	cp := *rel
	r.rels[rel.Uuid] = &cp
	return nil
}

func (r *relationshipRepo) Update(rel *model.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rels[rel.Uuid]; !ok {
		return notFound("关系不存在")
	}
	cp := *rel
	r.rels[rel.Uuid] = &cp
	return nil
}

func (r *relationshipRepo) UpdateFields(uuid string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.rels[uuid]
	if !ok {
		return notFound("关系不存在")
	}
	for field, value := range updates {
		switch field {
		case "type_by_owner":
			rel.TypeByOwner = value.(int8)
		case "type_by_receiver":
			rel.TypeByReceiver = value.(int8)
		case "receiver_name":
			rel.ReceiverName = value.(string)
		case "invite_email":
			rel.InviteEmail = value.(string)
		case "mod_date":
			rel.ModDate = value.(int64)
		}
	}
	return nil
}

// ==================== Group ====================

type groupRepo struct {
	mu     sync.RWMutex
	groups map[string]*model.ContactGroup
}

func (r *groupRepo) FindByUuid(uuid string) (*model.ContactGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if grp, ok := r.groups[uuid]; ok {
		cp := *grp
		cp.RelOrder = append(model.StringList{}, grp.RelOrder...)
		return &cp, nil
	}
	return nil, notFound("分组不存在")
}

func (r *groupRepo) FindByOwner(ownerName string) ([]model.ContactGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.ContactGroup, 0)
	for _, grp := range r.groups {
		if grp.OwnerName == ownerName {
			cp := *grp
			cp.RelOrder = append(model.StringList{}, grp.RelOrder...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *groupRepo) FindByOwnerSince(ownerName string, since int64) ([]model.ContactGroup, error) {
	groups, _ := r.FindByOwner(ownerName)
	out := make([]model.ContactGroup, 0, len(groups))
	for _, grp := range groups {
		if grp.ModDate > since {
			out = append(out, grp)
		}
	}
	return out, nil
}

func (r *groupRepo) Create(group *model.ContactGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.Uuid]; ok {
		return errorx.New(errorx.CodeAlreadyExists, "分组已存在")
	}
	cp := *group
	cp.RelOrder = append(model.StringList{}, group.RelOrder...)
	r.groups[group.Uuid] = &cp
	return nil
}

func (r *groupRepo) Update(group *model.ContactGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.Uuid]; !ok {
		return notFound("分组不存在")
	}
	cp := *group
	cp.RelOrder = append(model.StringList{}, group.RelOrder...)
	r.groups[group.Uuid] = &cp
	return nil
}

func (r *groupRepo) UpdateFields(uuid string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	grp, ok := r.groups[uuid]
	if !ok {
		return notFound("分组不存在")
	}
	for field, value := range updates {
		switch field {
		case "title":
			grp.Title = value.(string)
		case "rel_order":
			grp.RelOrder = append(model.StringList{}, value.(model.StringList)...)
		case "mod_date":
			grp.ModDate = value.(int64)
		}
	}
	return nil
}

func (r *groupRepo) SoftDeleteByUuid(uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, uuid)
	return nil
}

// ==================== Filing ====================

type filingRepo struct {
	mu      sync.RWMutex
	filings []model.GroupFiling
}

func (r *filingRepo) FindByGroupUuid(groupUuid string) ([]model.GroupFiling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.GroupFiling, 0)
	for _, filing := range r.filings {
		if filing.GroupUuid == groupUuid {
			out = append(out, filing)
		}
	}
	return out, nil
}

func (r *filingRepo) FindByGroupUuids(groupUuids []string) ([]model.GroupFiling, error) {
	set := make(map[string]struct{}, len(groupUuids))
	for _, uuid := range groupUuids {
		set[uuid] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.GroupFiling, 0)
	for _, filing := range r.filings {
		if _, ok := set[filing.GroupUuid]; ok {
			out = append(out, filing)
		}
	}
	return out, nil
}

func (r *filingRepo) FindByRelationshipSide(relationshipUuid, side string) ([]model.GroupFiling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.GroupFiling, 0)
	for _, filing := range r.filings {
		if filing.RelationshipUuid == relationshipUuid && filing.Side == side {
			out = append(out, filing)
		}
	}
	return out, nil
}

func (r *filingRepo) Exists(groupUuid, relationshipUuid, side string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, filing := range r.filings {
		if filing.GroupUuid == groupUuid && filing.RelationshipUuid == relationshipUuid && filing.Side == side {
			return true, nil
		}
	}
	return false, nil
}

func (r *filingRepo) Create(filing *model.GroupFiling) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filings = append(r.filings, *filing)
	return nil
}

func (r *filingRepo) Delete(groupUuid, relationshipUuid, side string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filings = r.filter(func(f model.GroupFiling) bool {
		return !(f.GroupUuid == groupUuid && f.RelationshipUuid == relationshipUuid && f.Side == side)
	})
	return nil
}

func (r *filingRepo) DeleteByGroupUuid(groupUuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filings = r.filter(func(f model.GroupFiling) bool {
		return f.GroupUuid != groupUuid
	})
	return nil
}

func (r *filingRepo) DeleteByRelationshipSide(relationshipUuid, side string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filings = r.filter(func(f model.GroupFiling) bool {
		return !(f.RelationshipUuid == relationshipUuid && f.Side == side)
	})
	return nil
}

// filter 调用方必须持有写锁
func (r *filingRepo) filter(keep func(model.GroupFiling) bool) []model.GroupFiling {
	out := r.filings[:0]
	for _, filing := range r.filings {
		if keep(filing) {
			out = append(out, filing)
		}
	}
	return out
}

// ==================== Event ====================

type eventRepo struct {
	mu     sync.RWMutex
	events map[string]*model.Event
}

func (r *eventRepo) FindByUuid(uuid string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if event, ok := r.events[uuid]; ok {
		cp := *event
		return &cp, nil
	}
	return nil, notFound("事件不存在")
}

func (r *eventRepo) FindByUuids(uuids []string) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Event, 0, len(uuids))
	seen := make(map[string]struct{}, len(uuids))
	for _, uuid := range uuids {
		if _, dup := seen[uuid]; dup {
			continue
		}
		seen[uuid] = struct{}{}
		if event, ok := r.events[uuid]; ok {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *eventRepo) FindByRelationshipSide(relationshipUuid, side string) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, event := range r.events {
		if event.RelationshipUuid == relationshipUuid && event.Side == side {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *eventRepo) FindByRelationshipUuids(relationshipUuids []string) ([]model.Event, error) {
	set := make(map[string]struct{}, len(relationshipUuids))
	for _, uuid := range relationshipUuids {
		set[uuid] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, event := range r.events {
		if _, ok := set[event.RelationshipUuid]; ok {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *eventRepo) Create(event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.Uuid]; ok {
		return errorx.New(errorx.CodeAlreadyExists, "事件已存在")
	}
	cp := *event
	r.events[event.Uuid] = &cp
	return nil
}

func (r *eventRepo) SoftDeleteByUuids(uuids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, uuid := range uuids {
		delete(r.events, uuid)
	}
	return nil
}

func (r *eventRepo) SoftDeleteByRelationship(relationshipUuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uuid, event := range r.events {
		if event.RelationshipUuid == relationshipUuid {
			delete(r.events, uuid)
		}
	}
	return nil
}

func (r *eventRepo) SoftDeleteByRelationshipSideAndType(relationshipUuid, side string, eventType int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uuid, event := range r.events {
		if event.RelationshipUuid == relationshipUuid && event.Side == side && event.Type == eventType {
			delete(r.events, uuid)
		}
	}
	return nil
}
