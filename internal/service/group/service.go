package group

import (
	"context"

	"go.uber.org/zap"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/dto/respond"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/snowflake"
)

// TypeSetter 关系状态变更入口，由关系状态机实现
// 建组时顺带拉黑/删除的关系必须走状态机，保证级联和事件清理不被绕过
type TypeSetter interface {
	SetType(username, relationshipUuid string, newType int8) (*respond.RelationshipRespond, error)
}

// contactGroupService 联系人分组业务逻辑实现
type contactGroupService struct {
	repos  *repository.Repositories
	clk    clock.Clock
	types  TypeSetter
	broker notify.Broker
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, clk clock.Clock, types TypeSetter, broker notify.Broker) *contactGroupService {
	return &contactGroupService{
		repos:  repos,
		clk:    clk,
		types:  types,
		broker: broker,
	}
}

// classify 判断提交的关系 id 是否可归入 username 的分组
// 只有本人参与、且己方状态为好友的关系可入组；返回关系侧
func classify(repos *repository.Repositories, username, relationshipUuid string) (string, bool) {
	rel, err := repos.Relationship.FindByUuid(relationshipUuid)
	if err != nil {
		return "", false
	}
	side := rel.SideOf(username)
	if side == "" {
		return "", false
	}
	if rel.TypeBySide(side) != rel_type_enum.FRIEND {
		return "", false
	}
	return side, true
}

// dedupFirst 去重，只保留每个 id 的第一次出现
func dedupFirst(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toGroupRespond(grp *model.ContactGroup) *respond.GroupRespond {
	return &respond.GroupRespond{
		Uuid:     grp.Uuid,
		Title:    grp.Title,
		RelOrder: append([]string{}, grp.RelOrder...),
		ModDate:  grp.ModDate,
	}
}

// CreateNewGroup 创建分组
// 提交的 file_ids 逐个分类：可识别的归入分组，无法识别的进 unresolved
// block_ids/delete_ids 通过状态机顺带处理
func (g *contactGroupService) CreateNewGroup(username string, req request.CreateNewGroupRequest) (*respond.CreateNewGroupRespond, error) {
	now := g.clk.NowMillis()
	grp := &model.ContactGroup{
		Uuid:      snowflake.GenerateGroupUuid(),
		OwnerName: username,
		Title:     req.Title,
		RelOrder:  model.StringList{},
		ModDate:   now,
	}
	unresolved := make([]string, 0)

	err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
		user, err := txRepos.User.FindByUsername(username)
		if err != nil {
			return err
		}

		if err := txRepos.Group.Create(grp); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		order := model.StringList{}
		for _, relUuid := range dedupFirst(req.FileIds) {
			side, ok := classify(txRepos, username, relUuid)
			if !ok {
				// 无法识别的 id 静默丢弃，不让整个请求失败
				unresolved = append(unresolved, relUuid)
				continue
			}
			filing := &model.GroupFiling{
				GroupUuid:        grp.Uuid,
				RelationshipUuid: relUuid,
				Side:             side,
			}
			if err := txRepos.Filing.Create(filing); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			order = append(order, relUuid)
		}
		grp.RelOrder = order
		if err := txRepos.Group.Update(grp); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}

		// 新分组追加到用户的分组排序末尾
		newGroupOrder := append(model.StringList{}, user.GroupOrder...)
		newGroupOrder = append(newGroupOrder, grp.Uuid)
		if err := txRepos.User.UpdateFields(username, map[string]interface{}{
			"group_order":     newGroupOrder,
			"groups_mod_date": now,
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 顺带拉黑/删除，走状态机，失败的 id 并入 unresolved
	for _, relUuid := range req.BlockIds {
		if _, err := g.types.SetType(username, relUuid, rel_type_enum.BLOCKED); err != nil {
			unresolved = append(unresolved, relUuid)
		}
	}
	for _, relUuid := range req.DeleteIds {
		if _, err := g.types.SetType(username, relUuid, rel_type_enum.DELETED); err != nil {
			unresolved = append(unresolved, relUuid)
		}
	}

	_ = g.broker.Publish(context.Background(), &notify.SyncHint{
		Username: username, Kind: "group", ModDate: now,
	})

	return &respond.CreateNewGroupRespond{
		Group:      *toGroupRespond(grp),
		Unresolved: unresolved,
	}, nil
}

// UpdateGroup 更新分组
// 排序调和分三阶段：不在新排序中的成员出组；新出现的合法关系入组；
// 无法识别的 id 丢弃。最终落库的排序永远是请求排序的保序子集
func (g *contactGroupService) UpdateGroup(username string, req request.UpdateGroupRequest) (*respond.GroupRespond, error) {
	grp, err := g.repos.Group.FindByUuid(req.Uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "分组 %s 不存在", req.Uuid)
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if grp.OwnerName != username {
		return nil, errorx.ErrForbidden
	}

	now := g.clk.NowMillis()
	changed := false

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		if req.Title != "" && req.Title != grp.Title {
			grp.Title = req.Title
			changed = true
		}

		if req.Order != nil {
			filings, err := txRepos.Filing.FindByGroupUuid(grp.Uuid)
			if err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			filed := make(map[string]string, len(filings)) // relUuid -> side
			for _, filing := range filings {
				filed[filing.RelationshipUuid] = filing.Side
			}

			requested := dedupFirst(req.Order)
			requestedSet := make(map[string]struct{}, len(requested))
			for _, id := range requested {
				requestedSet[id] = struct{}{}
			}

			// 阶段一：已归档但不在新排序中的成员出组
			for relUuid, side := range filed {
				if _, ok := requestedSet[relUuid]; !ok {
					if err := txRepos.Filing.Delete(grp.Uuid, relUuid, side); err != nil {
						zap.L().Error(err.Error())
						return errorx.ErrServerBusy
					}
				}
			}

			// 阶段二/三：按请求顺序重建排序，新成员入组，无法识别的丢弃
			persisted := model.StringList{}
			for _, relUuid := range requested {
				if _, ok := filed[relUuid]; ok {
					persisted = append(persisted, relUuid)
					continue
				}
				side, ok := classify(txRepos, username, relUuid)
				if !ok {
					continue
				}
				filing := &model.GroupFiling{
					GroupUuid:        grp.Uuid,
					RelationshipUuid: relUuid,
					Side:             side,
				}
				if err := txRepos.Filing.Create(filing); err != nil {
					zap.L().Error(err.Error())
					return errorx.ErrServerBusy
				}
				persisted = append(persisted, relUuid)
			}
			grp.RelOrder = persisted
			changed = true
		}

		if !changed {
			return nil
		}
		grp.ModDate = now
		if err := txRepos.Group.Update(grp); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.User.UpdateFields(username, map[string]interface{}{
			"groups_mod_date": now,
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		_ = g.broker.Publish(context.Background(), &notify.SyncHint{
			Username: username, Kind: "group", ModDate: now,
		})
	}
	return toGroupRespond(grp), nil
}

// DeleteGroup 删除分组
// 双侧归档无条件清理，分组从用户排序中摘除
func (g *contactGroupService) DeleteGroup(username, groupUuid string) error {
	grp, err := g.repos.Group.FindByUuid(groupUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "分组 %s 不存在", groupUuid)
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if grp.OwnerName != username {
		return errorx.ErrForbidden
	}

	now := g.clk.NowMillis()
	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		user, err := txRepos.User.FindByUsername(username)
		if err != nil {
			return err
		}
		if err := txRepos.Filing.DeleteByGroupUuid(groupUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.Group.SoftDeleteByUuid(groupUuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		if err := txRepos.User.UpdateFields(username, map[string]interface{}{
			"group_order":     user.GroupOrder.Remove(groupUuid),
			"groups_mod_date": now,
		}); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = g.broker.Publish(context.Background(), &notify.SyncHint{
		Username: username, Kind: "group", ModDate: now,
	})
	return nil
}
