package service

import (
	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dao/redis"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/infrastructure/sms"
	eventsvc "huoban_contact_server/internal/service/event"
	groupsvc "huoban_contact_server/internal/service/group"
	relsvc "huoban_contact_server/internal/service/relationship"
	syncsvc "huoban_contact_server/internal/service/sync"
	usersvc "huoban_contact_server/internal/service/user"
	"huoban_contact_server/pkg/clock"
)

// Services 聚合所有业务服务实例
// Handler 层通过此结构访问业务层
type Services struct {
	User         UserService
	Relationship RelationshipService
	Group        GroupService
	Event        EventService
	Sync         SyncService
}

// Svc 全局服务实例，由 InitServices 初始化
var Svc *Services

// NewServices 创建所有服务实例并完成内部接线
// 分组服务的拉黑/删除入口接到关系状态机上，保证级联不被绕过
func NewServices(
	repos *repository.Repositories,
	cache redis.AsyncCacheService,
	smsSvc sms.SmsService,
	broker notify.Broker,
	clk clock.Clock,
) *Services {
	relationshipService := relsvc.NewRelationshipService(repos, clk, broker)
	return &Services{
		User:         usersvc.NewUserService(repos, cache, smsSvc, clk),
		Relationship: relationshipService,
		Group:        groupsvc.NewGroupService(repos, clk, relationshipService, broker),
		Event:        eventsvc.NewEventService(repos, clk, broker),
		Sync:         syncsvc.NewSyncService(repos, cache, clk, broker),
	}
}

// InitServices 初始化全局服务实例
func InitServices(
	repos *repository.Repositories,
	cache redis.AsyncCacheService,
	smsSvc sms.SmsService,
	broker notify.Broker,
	clk clock.Clock,
) {
	Svc = NewServices(repos, cache, smsSvc, broker, clk)
}
