package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/mocks"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/internal/service"
	eventsvc "huoban_contact_server/internal/service/event"
	relsvc "huoban_contact_server/internal/service/relationship"
	"huoban_contact_server/pkg/enum/event/event_type_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_side_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
)

type testEnv struct {
	repos  *repository.Repositories
	clk    *mocks.FakeClock
	broker *mocks.FakeBroker
	rels   service.RelationshipService
	events service.EventService
}

func newTestEnv(t *testing.T, usernames ...string) *testEnv {
	t.Helper()
	repos := mocks.NewRepositories()
	clk := mocks.NewFakeClock(1000)
	broker := mocks.NewFakeBroker()
	for _, username := range usernames {
		require.NoError(t, repos.User.Create(&model.UserInfo{Username: username}))
	}
	return &testEnv{
		repos:  repos,
		clk:    clk,
		broker: broker,
		rels:   relsvc.NewRelationshipService(repos, clk, broker),
		events: eventsvc.NewEventService(repos, clk, broker),
	}
}

func (env *testEnv) befriend(t *testing.T, a, b string) string {
	t.Helper()
	resp, err := env.rels.CreateRelationships(a, request.CreateRelationshipsRequest{
		Usernames: []string{b},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	relUuid := resp.Created[0].Uuid
	_, err = env.rels.SetType(b, relUuid, rel_type_enum.FRIEND)
	require.NoError(t, err)
	return relUuid
}

func TestCreateStatusRequestLandsOnPeerSide(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")
	env.clk.Advance(10)

	require.NoError(t, env.events.CreateStatusRequest("alice", relUuid))

	// 事件挂在对方（receiver=bob）一侧
	events, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	statusRequests := 0
	for _, ev := range events {
		if ev.Type == event_type_enum.STATUS_REQUEST {
			statusRequests++
		}
	}
	assert.Equal(t, 1, statusRequests)

	hints := env.broker.HintsFor("bob")
	require.NotEmpty(t, hints)
	assert.Equal(t, "event", hints[len(hints)-1].Kind)
}

func TestCreateStatusRequestDedupes(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	require.NoError(t, env.events.CreateStatusRequest("alice", relUuid))
	env.clk.Advance(10)
	require.NoError(t, env.events.CreateStatusRequest("alice", relUuid))

	// 同侧同类型只保留最新一条
	events, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	statusRequests := make([]model.Event, 0)
	for _, ev := range events {
		if ev.Type == event_type_enum.STATUS_REQUEST {
			statusRequests = append(statusRequests, ev)
		}
	}
	require.Len(t, statusRequests, 1)
	assert.Equal(t, env.clk.NowMillis(), statusRequests[0].ModDate)
}

func TestCreateStatusRequestRequiresMutualFriendship(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	// 尚未接受的邀请：发起方也不能请求状态
	resp, err := env.rels.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"bob"},
	})
	require.NoError(t, err)
	pendingRel := resp.Created[0].Uuid
	err = env.events.CreateStatusRequest("alice", pendingRel)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 非关系参与者
	err = env.events.CreateStatusRequest("carol", pendingRel)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 不存在的关系
	err = env.events.CreateStatusRequest("alice", "R_missing")
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestAcknowledgeEventsOnlyOwnSide(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	// 接受事件已落在 alice（发起方）侧，再给双方各挂一条状态请求
	require.NoError(t, env.events.CreateStatusRequest("alice", relUuid))
	require.NoError(t, env.events.CreateStatusRequest("bob", relUuid))

	aliceEvents, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.OWNER)
	require.NoError(t, err)
	require.Len(t, aliceEvents, 2)
	bobEvents, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	require.Len(t, bobEvents, 1)

	// alice 试图确认自己和 bob 的事件，只有自己侧的被删除
	removed, err := env.events.AcknowledgeEvents("alice", []string{
		aliceEvents[0].Uuid, aliceEvents[1].Uuid, bobEvents[0].Uuid, "E_missing",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{aliceEvents[0].Uuid, aliceEvents[1].Uuid}, removed)

	remaining, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestAcknowledgeEventsEmptyInput(t *testing.T) {
	env := newTestEnv(t, "alice")
	removed, err := env.events.AcknowledgeEvents("alice", nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
