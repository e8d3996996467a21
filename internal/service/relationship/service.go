// Package relationship 实现关系状态机
// 每段关系双方各持一份状态，状态转移只写己方字段，
// 拉黑/删除触发事件清空和己方分组级联
package relationship

import (
	"context"

	"go.uber.org/zap"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/internal/service/group"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/enum/event/event_type_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_side_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/snowflake"
)

// relationshipService 关系状态机实现
type relationshipService struct {
	repos  *repository.Repositories
	clk    clock.Clock
	broker notify.Broker
}

// NewRelationshipService 构造函数，注入所有依赖
func NewRelationshipService(repos *repository.Repositories, clk clock.Clock, broker notify.Broker) *relationshipService {
	return &relationshipService{
		repos:  repos,
		clk:    clk,
		broker: broker,
	}
}

// CollapseForViewer 返回对 viewer 一侧可见的双侧状态
// 对端高于好友的状态（拉黑/删除）一律收敛为好友：
// 用户永远不会得知自己被拉黑或删除
func CollapseForViewer(rel *model.Relationship, viewerSide string) (typeByOwner, typeByReceiver int8) {
	typeByOwner = rel.TypeByOwner
	typeByReceiver = rel.TypeByReceiver
	if viewerSide == rel_side_enum.OWNER && typeByReceiver > rel_type_enum.FRIEND {
		typeByReceiver = rel_type_enum.FRIEND
	}
	if viewerSide == rel_side_enum.RECEIVER && typeByOwner > rel_type_enum.FRIEND {
		typeByOwner = rel_type_enum.FRIEND
	}
	return
}

// ToRespond 组装 viewer 视角的关系视图（含可见性收敛和己方分组归属）
func ToRespond(repos *repository.Repositories, rel *model.Relationship, viewer string) *respond.RelationshipRespond {
	side := rel.SideOf(viewer)
	typeByOwner, typeByReceiver := CollapseForViewer(rel, side)

	groups := make([]string, 0)
	if side != "" {
		if filings, err := repos.Filing.FindByRelationshipSide(rel.Uuid, side); err == nil {
			for _, filing := range filings {
				groups = append(groups, filing.GroupUuid)
			}
		}
	}

	return &respond.RelationshipRespond{
		Uuid:           rel.Uuid,
		OwnerName:      rel.OwnerName,
		ReceiverName:   rel.ReceiverName,
		InviteEmail:    rel.InviteEmail,
		TypeByOwner:    typeByOwner,
		TypeByReceiver: typeByReceiver,
		Groups:         groups,
		ModDate:        rel.ModDate,
	}
}

// sideField 己方状态对应的数据库列
func sideField(side string) string {
	if side == rel_side_enum.OWNER {
		return "type_by_owner"
	}
	return "type_by_receiver"
}

// setTypeTx 状态转移核心，在事务内执行
// 返回更新后的关系和本次是否发生了分组级联
func setTypeTx(txRepos *repository.Repositories, username, relationshipUuid string, newType int8, now int64) (*model.Relationship, bool, error) {
	if !rel_type_enum.Valid(newType) {
		return nil, false, errorx.Newf(errorx.CodeInvalidParam, "非法的关系状态 %d", newType)
	}

	rel, err := txRepos.Relationship.FindByUuid(relationshipUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, false, errorx.Newf(errorx.CodeNotFound, "关系 %s 不存在", relationshipUuid)
		}
		zap.L().Error(err.Error())
		return nil, false, errorx.ErrServerBusy
	}
	side := rel.SideOf(username)
	if side == "" {
		return nil, false, errorx.ErrForbidden
	}

	cur := rel.TypeBySide(side)
	if cur == newType {
		return rel, false, nil // 幂等，无副作用
	}
	peerType := rel.TypeBySide(rel_side_enum.Peer(side))
	groupsChanged := false

	// 接受：被邀请方从待确认升为好友，且发起方已是好友
	// 己方的好友请求事件已处理完毕，清掉；
	// 事件挂在消费方一侧，接受事件因此落在发起方侧，由发起方同步时取走
	if newType == rel_type_enum.FRIEND && cur == rel_type_enum.PENDING &&
		side == rel_side_enum.RECEIVER && rel.TypeByOwner == rel_type_enum.FRIEND {
		if err := txRepos.Event.SoftDeleteByRelationshipSideAndType(rel.Uuid, side, event_type_enum.REQUEST); err != nil {
			zap.L().Error(err.Error())
			return nil, false, errorx.ErrServerBusy
		}
		event := &model.Event{
			Uuid:             snowflake.GenerateEventUuid(),
			RelationshipUuid: rel.Uuid,
			Side:             rel_side_enum.Peer(side),
			Type:             event_type_enum.ACCEPT,
			ModDate:          now,
		}
		if err := txRepos.Event.Create(event); err != nil {
			zap.L().Error(err.Error())
			return nil, false, errorx.ErrServerBusy
		}
	}

	if newType >= rel_type_enum.BLOCKED {
		// 双侧首次进入拉黑/删除时清空全部事件
		// 任一侧已经拉黑/删除过则事件早已清空，跳过即幂等
		if cur < rel_type_enum.BLOCKED && peerType < rel_type_enum.BLOCKED {
			if err := txRepos.Event.SoftDeleteByRelationship(rel.Uuid); err != nil {
				zap.L().Error(err.Error())
				return nil, false, errorx.ErrServerBusy
			}
		}
		// 己方脱离好友/待确认 → 从己方所有分组中移除
		if cur < rel_type_enum.BLOCKED {
			changed, err := group.CascadeRemove(txRepos, rel.Uuid, side, now)
			if err != nil {
				return nil, false, err
			}
			groupsChanged = changed
		}
	}

	// 单字段写入：只落己方状态列和修改时间戳
	if err := txRepos.Relationship.UpdateFields(rel.Uuid, map[string]interface{}{
		sideField(side): newType,
		"mod_date":      now,
	}); err != nil {
		zap.L().Error(err.Error())
		return nil, false, errorx.ErrServerBusy
	}

	if side == rel_side_enum.OWNER {
		rel.TypeByOwner = newType
	} else {
		rel.TypeByReceiver = newType
	}
	rel.ModDate = now
	return rel, groupsChanged, nil
}

// SetType 更新单条关系的己方状态
func (s *relationshipService) SetType(username, relationshipUuid string, newType int8) (*respond.RelationshipRespond, error) {
	now := s.clk.NowMillis()
	var rel *model.Relationship
	var groupsChanged bool

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var err error
		rel, groupsChanged, err = setTypeTx(txRepos, username, relationshipUuid, newType, now)
		if err != nil {
			return err
		}
		if groupsChanged {
			return txRepos.User.UpdateFields(username, map[string]interface{}{
				"groups_mod_date": now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hintPeer(rel, username, now)
	return ToRespond(s.repos, rel, username), nil
}

// UpdateRelationships 批量更新己方关系状态
// 逐条处理，部分成功：失败的 uuid 进 unresolved，不中断整批
// 发生过级联的请求只在结尾 bump 一次 groups_mod_date
func (s *relationshipService) UpdateRelationships(username string, req request.UpdateRelationshipsRequest) (*respond.UpdateRelationshipsRespond, error) {
	now := s.clk.NowMillis()
	resp := &respond.UpdateRelationshipsRespond{
		Updated:    make([]respond.RelationshipRespond, 0, len(req.Updates)),
		Unresolved: make([]string, 0),
	}
	anyCascade := false

	for _, update := range req.Updates {
		var rel *model.Relationship
		var groupsChanged bool
		err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
			var err error
			rel, groupsChanged, err = setTypeTx(txRepos, username, update.Uuid, update.Type, now)
			return err
		})
		if err != nil {
			resp.Unresolved = append(resp.Unresolved, update.Uuid)
			continue
		}
		if groupsChanged {
			anyCascade = true
		}
		resp.Updated = append(resp.Updated, *ToRespond(s.repos, rel, username))
		s.hintPeer(rel, username, now)
	}

	if anyCascade {
		if err := s.repos.User.UpdateFields(username, map[string]interface{}{
			"groups_mod_date": now,
		}); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}
	return resp, nil
}

// CreateRelationships 批量发起好友邀请
// 用户名目标：不存在或已有活跃关系 → unresolved；己方已删除 → 重新加回
// 邮箱目标：已注册用户按用户名处理，未注册挂 invite_email 等注册时绑定
func (s *relationshipService) CreateRelationships(username string, req request.CreateRelationshipsRequest) (*respond.CreateRelationshipsRespond, error) {
	now := s.clk.NowMillis()
	resp := &respond.CreateRelationshipsRespond{
		Created:    make([]respond.RelationshipRespond, 0),
		Unresolved: make([]string, 0),
	}

	caller, err := s.repos.User.FindByUsername(username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	for _, target := range req.Usernames {
		if target == username {
			resp.Unresolved = append(resp.Unresolved, target) // 不能加自己
			continue
		}
		targetUser, err := s.repos.User.FindByUsername(target)
		if err != nil {
			resp.Unresolved = append(resp.Unresolved, target)
			continue
		}
		rel, err := s.initiate(username, targetUser.Username, now)
		if err != nil {
			resp.Unresolved = append(resp.Unresolved, target)
			continue
		}
		resp.Created = append(resp.Created, *ToRespond(s.repos, rel, username))
	}

	for _, email := range req.Emails {
		if email == caller.Email {
			resp.Unresolved = append(resp.Unresolved, email)
			continue
		}
		targetUser, err := s.repos.User.FindByEmail(email)
		if err == nil {
			// 邮箱已注册，按用户名邀请处理
			rel, err := s.initiate(username, targetUser.Username, now)
			if err != nil {
				resp.Unresolved = append(resp.Unresolved, email)
				continue
			}
			resp.Created = append(resp.Created, *ToRespond(s.repos, rel, username))
			continue
		}
		if !errorx.IsNotFound(err) {
			zap.L().Error(err.Error())
			resp.Unresolved = append(resp.Unresolved, email)
			continue
		}
		rel, err := s.inviteByEmail(username, email, now)
		if err != nil {
			resp.Unresolved = append(resp.Unresolved, email)
			continue
		}
		resp.Created = append(resp.Created, *ToRespond(s.repos, rel, username))
	}

	return resp, nil
}

// initiate 对已注册用户发起邀请
// 双方没有关系则新建并在对方侧挂好友请求事件；
// 已有关系且己方是删除状态则重新加回（只写己方），其余情况视为已存在
func (s *relationshipService) initiate(username, target string, now int64) (*model.Relationship, error) {
	existing, err := s.repos.Relationship.FindBetween(username, target)
	if err == nil {
		side := existing.SideOf(username)
		if existing.TypeBySide(side) != rel_type_enum.DELETED {
			return nil, errorx.Newf(errorx.CodeAlreadyExists, "与 %s 的关系已存在", target)
		}
		// 重新加回：己方回到好友，不碰对方状态
		if err := s.repos.Relationship.UpdateFields(existing.Uuid, map[string]interface{}{
			sideField(side): rel_type_enum.FRIEND,
			"mod_date":      now,
		}); err != nil {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
		if side == rel_side_enum.OWNER {
			existing.TypeByOwner = rel_type_enum.FRIEND
		} else {
			existing.TypeByReceiver = rel_type_enum.FRIEND
		}
		existing.ModDate = now
		s.hintPeer(existing, username, now)
		return existing, nil
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rel := &model.Relationship{
		Uuid:           snowflake.GenerateRelationshipUuid(),
		OwnerName:      username,
		ReceiverName:   target,
		TypeByOwner:    rel_type_enum.FRIEND,
		TypeByReceiver: rel_type_enum.PENDING,
		ModDate:        now,
	}
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Relationship.Create(rel); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		event := &model.Event{
			Uuid:             snowflake.GenerateEventUuid(),
			RelationshipUuid: rel.Uuid,
			Side:             rel_side_enum.RECEIVER,
			Type:             event_type_enum.REQUEST,
			ModDate:          now,
		}
		if err := txRepos.Event.Create(event); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.hintPeer(rel, username, now)
	return rel, nil
}

// inviteByEmail 对未注册邮箱发起邀请
// 关系挂在邮箱上，receiver 留空，等对方注册初始化时绑定
func (s *relationshipService) inviteByEmail(username, email string, now int64) (*model.Relationship, error) {
	pending, err := s.repos.Relationship.FindByInviteEmail(email)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	for i := range pending {
		if pending[i].OwnerName == username {
			return nil, errorx.Newf(errorx.CodeAlreadyExists, "已向 %s 发出过邀请", email)
		}
	}

	rel := &model.Relationship{
		Uuid:           snowflake.GenerateRelationshipUuid(),
		OwnerName:      username,
		InviteEmail:    email,
		TypeByOwner:    rel_type_enum.FRIEND,
		TypeByReceiver: rel_type_enum.PENDING,
		ModDate:        now,
	}
	if err := s.repos.Relationship.Create(rel); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return rel, nil
}

// hintPeer 变更后提醒对端增量同步，对端未注册时跳过
func (s *relationshipService) hintPeer(rel *model.Relationship, username string, now int64) {
	side := rel.SideOf(username)
	peer := rel.PeerName(side)
	if peer == "" {
		return
	}
	_ = s.broker.Publish(context.Background(), &notify.SyncHint{
		Username: peer, Kind: "relationship", ModDate: now,
	})
}
