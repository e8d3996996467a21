// Package sync 实现联系人初始化与增量同步
// 客户端持有上次同步时间戳，服务端按各分区的修改时间戳独立过滤，
// 未变化的分区返回空；好友列表例外，每次整表下发作为权威快照
package sync

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dao/redis"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/internal/service/relationship"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/constants"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/snowflake"
)

// syncService 初始化与增量同步业务实现
type syncService struct {
	repos  *repository.Repositories
	cache  redis.AsyncCacheService
	clk    clock.Clock
	broker notify.Broker
}

// NewSyncService 构造函数，注入所有依赖
func NewSyncService(repos *repository.Repositories, cache redis.AsyncCacheService, clk clock.Clock, broker notify.Broker) *syncService {
	return &syncService{
		repos:  repos,
		cache:  cache,
		clk:    clk,
		broker: broker,
	}
}

// InitializeUser 联系人初始化
// 预置三个默认分组，并把注册前挂在邮箱上的邀请绑定到本账号
// 重复初始化直接拒绝，保证预置分组不会翻倍
func (s *syncService) InitializeUser(username, email string) error {
	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if user.Initialized == 1 {
		return errorx.New(errorx.CodeAlreadyInitialized, "用户已完成初始化")
	}
	if email == "" {
		email = user.Email
	}

	now := s.clk.NowMillis()
	titles := []string{
		constants.SEED_GROUP_FAVORITES,
		constants.SEED_GROUP_CLOSE_FRIENDS,
		constants.SEED_GROUP_FAMILY,
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		groupOrder := model.StringList{}
		for _, title := range titles {
			grp := &model.ContactGroup{
				Uuid:      snowflake.GenerateGroupUuid(),
				OwnerName: username,
				Title:     title,
				RelOrder:  model.StringList{},
				ModDate:   now,
			}
			if err := txRepos.Group.Create(grp); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			groupOrder = append(groupOrder, grp.Uuid)
		}

		if err := txRepos.User.UpdateFields(username, map[string]interface{}{
			"group_order":     groupOrder,
			"groups_mod_date": now,
			"user_mod_date":   now,
			"initialized":     int8(1),
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		if email != "" {
			if _, err := bindInvitesTx(txRepos, username, email, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.broker.Publish(context.Background(), &notify.SyncHint{
		Username: username, Kind: "group", ModDate: now,
	})
	return nil
}

// BindInvites 把挂在邮箱上的邀请关系绑定到本账号
// 幂等：邮箱上没有挂起的邀请时返回 0
func (s *syncService) BindInvites(username, email string) (int, error) {
	if email == "" {
		return 0, errorx.ErrInvalidParam
	}
	now := s.clk.NowMillis()
	var bound int
	var owners []string

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var err error
		bound, err = bindInvitesTx(txRepos, username, email, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	// 绑定成功后提醒各发起方拉取更新
	if bound > 0 {
		pending, err := s.repos.Relationship.FindByUser(username)
		if err == nil {
			for i := range pending {
				side := pending[i].SideOf(username)
				if peer := pending[i].PeerName(side); peer != "" {
					owners = append(owners, peer)
				}
			}
		}
		for _, owner := range owners {
			_ = s.broker.Publish(context.Background(), &notify.SyncHint{
				Username: owner, Kind: "relationship", ModDate: now,
			})
		}
	}
	return bound, nil
}

// bindInvitesTx 事务内执行邀请绑定，返回绑定条数
// 回填 receiver_name 并清空 invite_email，跳过自己发给自己的异常数据
func bindInvitesTx(txRepos *repository.Repositories, username, email string, now int64) (int, error) {
	pending, err := txRepos.Relationship.FindByInviteEmail(email)
	if err != nil {
		zap.L().Error(err.Error())
		return 0, errorx.ErrServerBusy
	}
	bound := 0
	for i := range pending {
		if pending[i].OwnerName == username {
			continue
		}
		if err := txRepos.Relationship.UpdateFields(pending[i].Uuid, map[string]interface{}{
			"receiver_name": username,
			"invite_email":  "",
			"mod_date":      now,
		}); err != nil {
			zap.L().Error(err.Error())
			return 0, errorx.ErrServerBusy
		}
		bound++
	}
	return bound, nil
}

// GetDatabase 按上次同步时间戳组装增量视图
// 各分区独立判断：用户块看三个时间戳，分组看 groups_mod_date 闸门，
// 好友列表每次整表下发，事件按行上的 mod_date 过滤，
// 联系人资料看资料/状态时间戳
func (s *syncService) GetDatabase(username string, lastSyncDate int64) (*respond.GetDatabaseRespond, error) {
	now := s.clk.NowMillis()
	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	resp := &respond.GetDatabaseRespond{
		LastSyncDate:  now,
		Relationships: make([]respond.RelationshipRespond, 0),
		Groups:        make([]respond.GroupRespond, 0),
		Events:        make([]respond.EventRespond, 0),
		Profiles:      make([]respond.ProfileRespond, 0),
	}

	// 用户块：资料、状态或分组排序任一变化就整块下发
	if user.UserModDate > lastSyncDate || user.StatusModDate > lastSyncDate || user.GroupsModDate > lastSyncDate {
		resp.User = toUserRespond(user)
	}

	// 全部关系，供好友列表、事件归属和联系人资料使用
	rels, err := s.repos.Relationship.FindByUser(username)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 好友列表不做增量：每次同步整表下发（收敛后的双侧状态），
	// 客户端以本次列表为准，本次缺席即视为已移除；己方已删除的关系不下发
	for i := range rels {
		if rels[i].TypeBySide(rels[i].SideOf(username)) == rel_type_enum.DELETED {
			continue
		}
		resp.Relationships = append(resp.Relationships, *relationship.ToRespond(s.repos, &rels[i], username))
	}

	// 分组：闸门时间戳变了才查，只下发变化过的分组
	if user.GroupsModDate > lastSyncDate {
		groups, err := s.repos.Group.FindByOwnerSince(username, lastSyncDate)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		for i := range groups {
			resp.Groups = append(resp.Groups, respond.GroupRespond{
				Uuid:     groups[i].Uuid,
				Title:    groups[i].Title,
				RelOrder: append([]string{}, groups[i].RelOrder...),
				ModDate:  groups[i].ModDate,
			})
		}
	}

	// 事件：只下发挂在己方侧、且本次窗口内新增的
	relUuids := make([]string, 0, len(rels))
	sideByRel := make(map[string]string, len(rels))
	for i := range rels {
		relUuids = append(relUuids, rels[i].Uuid)
		sideByRel[rels[i].Uuid] = rels[i].SideOf(username)
	}
	if len(relUuids) > 0 {
		events, err := s.repos.Event.FindByRelationshipUuids(relUuids)
		if err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		for _, ev := range events {
			if ev.Side != sideByRel[ev.RelationshipUuid] {
				continue
			}
			if ev.ModDate <= lastSyncDate {
				continue
			}
			resp.Events = append(resp.Events, respond.EventRespond{
				Uuid:             ev.Uuid,
				RelationshipUuid: ev.RelationshipUuid,
				Type:             ev.Type,
				ModDate:          ev.ModDate,
			})
		}
	}

	// 联系人资料：己方未删除的关系对端
	// 资料字段和状态字段按各自的时间戳独立过滤，
	// 状态字段额外要求双方互为好友
	for i := range rels {
		rel := &rels[i]
		side := rel.SideOf(username)
		if rel.TypeBySide(side) == rel_type_enum.DELETED {
			continue
		}
		peer := rel.PeerName(side)
		if peer == "" {
			continue
		}
		profile, err := s.getProfile(peer)
		if err != nil {
			continue // 对端资料拿不到不阻塞整次同步
		}
		mutual := rel.TypeByOwner == rel_type_enum.FRIEND && rel.TypeByReceiver == rel_type_enum.FRIEND
		profileDirty := profile.UserModDate > lastSyncDate
		statusDirty := mutual && profile.StatusModDate > lastSyncDate
		if !profileDirty && !statusDirty {
			continue
		}
		item := respond.ProfileRespond{
			Username:      profile.Username,
			StatusModDate: profile.StatusModDate,
		}
		if profileDirty {
			item.Nickname = profile.Nickname
			item.Avatar = profile.Avatar
		}
		if statusDirty {
			item.Action = profile.Action
			item.Place = profile.Place
		}
		resp.Profiles = append(resp.Profiles, item)
	}

	return resp, nil
}

// cachedProfile 联系人资料缓存结构
type cachedProfile struct {
	Username      string `json:"username"`
	Nickname      string `json:"nickname"`
	Avatar        string `json:"avatar"`
	Action        string `json:"action"`
	Place         string `json:"place"`
	UserModDate   int64  `json:"user_mod_date"`
	StatusModDate int64  `json:"status_mod_date"`
}

// getProfile 读取联系人资料，缓存未命中时回源数据库并回填
func (s *syncService) getProfile(username string) (*cachedProfile, error) {
	ctx := context.Background()
	key := "profile_info_" + username

	if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
		var profile cachedProfile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			return &profile, nil
		}
	}

	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	profile := &cachedProfile{
		Username:      user.Username,
		Nickname:      user.Nickname,
		Avatar:        user.Avatar,
		Action:        user.Action,
		Place:         user.Place,
		UserModDate:   user.UserModDate,
		StatusModDate: user.StatusModDate,
	}
	if raw, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, key, string(raw), constants.REDIS_TIMEOUT*time.Minute)
	}
	return profile, nil
}

// invalidateProfile 异步失效联系人资料缓存
func (s *syncService) invalidateProfile(username string) {
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), "profile_info_"+username); err != nil {
			zap.L().Warn("资料缓存失效失败", zap.String("username", username), zap.Error(err))
		}
	})
}

// UpdateUser 更新资料与分组排序
// 分组排序必须是现有分组集合的一个排列，缺项或多项都拒绝
func (s *syncService) UpdateUser(username string, req request.UpdateUserRequest) (*respond.UserRespond, error) {
	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	now := s.clk.NowMillis()
	updates := make(map[string]interface{})

	if req.Nickname != "" && req.Nickname != user.Nickname {
		updates["nickname"] = req.Nickname
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" && req.Avatar != user.Avatar {
		updates["avatar"] = req.Avatar
		user.Avatar = req.Avatar
	}
	if req.GroupOrder != nil {
		if !samePermutation(req.GroupOrder, user.GroupOrder) {
			return nil, errorx.New(errorx.CodeInvalidParam, "分组排序与现有分组集合不符")
		}
		newOrder := model.StringList(req.GroupOrder)
		if !sameOrder(newOrder, user.GroupOrder) {
			updates["group_order"] = newOrder
			user.GroupOrder = newOrder
		}
	}
	if len(updates) == 0 {
		return toUserRespond(user), nil
	}

	updates["user_mod_date"] = now
	user.UserModDate = now
	if err := s.repos.User.UpdateFields(username, updates); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	s.invalidateProfile(username)
	_ = s.broker.Publish(context.Background(), &notify.SyncHint{
		Username: username, Kind: "user", ModDate: now,
	})
	return toUserRespond(user), nil
}

// UpdateStatus 更新状态两行（动态/位置）
// 内容没变则不 bump 时间戳，避免联系人被无谓唤醒
func (s *syncService) UpdateStatus(username string, req request.UpdateStatusRequest) error {
	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if req.Action == user.Action && req.Place == user.Place {
		return nil
	}

	now := s.clk.NowMillis()
	if err := s.repos.User.UpdateFields(username, map[string]interface{}{
		"action":          req.Action,
		"place":           req.Place,
		"status_mod_date": now,
	}); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	s.invalidateProfile(username)
	_ = s.broker.Publish(context.Background(), &notify.SyncHint{
		Username: username, Kind: "user", ModDate: now,
	})
	return nil
}

func toUserRespond(user *model.UserInfo) *respond.UserRespond {
	return &respond.UserRespond{
		Username:      user.Username,
		Nickname:      user.Nickname,
		Avatar:        user.Avatar,
		Action:        user.Action,
		Place:         user.Place,
		GroupOrder:    append([]string{}, user.GroupOrder...),
		UserModDate:   user.UserModDate,
		StatusModDate: user.StatusModDate,
		GroupsModDate: user.GroupsModDate,
	}
}

// samePermutation 判断两个切片是否包含完全相同的元素集合（不计顺序）
func samePermutation(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[string]int, len(a))
	for _, v := range a {
		count[v]++
	}
	for _, v := range b {
		count[v]--
		if count[v] < 0 {
			return false
		}
	}
	return true
}

func sameOrder(a, b model.StringList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
