// Package event 实现事件日志业务
// 事件挂在关系的某一侧，表示那一侧用户待处理的通知；
// 确认已读即软删除，状态请求同侧同类型只保留最新一条
package event

import (
	"context"

	"go.uber.org/zap"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/enum/event/event_type_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_side_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
	"huoban_contact_server/pkg/util/snowflake"
)

// eventService 事件日志业务实现
type eventService struct {
	repos  *repository.Repositories
	clk    clock.Clock
	broker notify.Broker
}

// NewEventService 构造函数，注入所有依赖
func NewEventService(repos *repository.Repositories, clk clock.Clock, broker notify.Broker) *eventService {
	return &eventService{
		repos:  repos,
		clk:    clk,
		broker: broker,
	}
}

// CreateStatusRequest 向对方挂一条状态请求事件
// 只允许在双方都是好友的关系上发起；
// 同侧已有的状态请求先清掉，保证对方只看到最新一条
func (s *eventService) CreateStatusRequest(username, relationshipUuid string) error {
	rel, err := s.repos.Relationship.FindByUuid(relationshipUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "关系 %s 不存在", relationshipUuid)
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	side := rel.SideOf(username)
	if side == "" {
		return errorx.ErrForbidden
	}
	// 双方真实状态都必须是好友，待确认/拉黑/删除一律拒绝
	if rel.TypeByOwner != rel_type_enum.FRIEND || rel.TypeByReceiver != rel_type_enum.FRIEND {
		return errorx.ErrForbidden
	}

	now := s.clk.NowMillis()
	peerSide := rel_side_enum.Peer(side)

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Event.SoftDeleteByRelationshipSideAndType(rel.Uuid, peerSide, event_type_enum.STATUS_REQUEST); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		event := &model.Event{
			Uuid:             snowflake.GenerateEventUuid(),
			RelationshipUuid: rel.Uuid,
			Side:             peerSide,
			Type:             event_type_enum.STATUS_REQUEST,
			ModDate:          now,
		}
		if err := txRepos.Event.Create(event); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.broker.Publish(context.Background(), &notify.SyncHint{
		Username: rel.PeerName(side), Kind: "event", ModDate: now,
	})
	return nil
}

// AcknowledgeEvents 确认事件已读
// 只删除确实挂在调用者一侧的事件，不属于自己的 uuid 静默跳过；
// 返回实际删除的事件 uuid，便于客户端核对
func (s *eventService) AcknowledgeEvents(username string, eventUuids []string) ([]string, error) {
	removed := make([]string, 0, len(eventUuids))
	if len(eventUuids) == 0 {
		return removed, nil
	}

	events, err := s.repos.Event.FindByUuids(eventUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 事件本身不带用户名，要回到所属关系上核对调用者的侧
	relUuids := make([]string, 0, len(events))
	for _, ev := range events {
		relUuids = append(relUuids, ev.RelationshipUuid)
	}
	rels, err := s.repos.Relationship.FindByUuids(relUuids)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	sideByRel := make(map[string]string, len(rels))
	for i := range rels {
		sideByRel[rels[i].Uuid] = rels[i].SideOf(username)
	}

	for _, ev := range events {
		if side, ok := sideByRel[ev.RelationshipUuid]; ok && side != "" && side == ev.Side {
			removed = append(removed, ev.Uuid)
		}
	}
	if len(removed) == 0 {
		return removed, nil
	}

	if err := s.repos.Event.SoftDeleteByUuids(removed); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return removed, nil
}
