package relationship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/mocks"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/internal/service"
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
	svc    service.RelationshipService
}

func newTestEnv(t *testing.T, usernames ...string) *testEnv {
	t.Helper()
	repos := mocks.NewRepositories()
	clk := mocks.NewFakeClock(1000)
	broker := mocks.NewFakeBroker()
	for _, username := range usernames {
		require.NoError(t, repos.User.Create(&model.UserInfo{
			Username: username,
			Nickname: username,
			Email:    username + "@example.com",
		}))
	}
	return &testEnv{
		repos:  repos,
		clk:    clk,
		broker: broker,
		svc:    relsvc.NewRelationshipService(repos, clk, broker),
	}
}

// invite 发起邀请并返回关系 uuid
func (env *testEnv) invite(t *testing.T, from, to string) string {
	t.Helper()
	resp, err := env.svc.CreateRelationships(from, request.CreateRelationshipsRequest{
		Usernames: []string{to},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	return resp.Created[0].Uuid
}

// befriend 建立双向好友关系并返回关系 uuid
func (env *testEnv) befriend(t *testing.T, a, b string) string {
	t.Helper()
	relUuid := env.invite(t, a, b)
	_, err := env.svc.SetType(b, relUuid, rel_type_enum.FRIEND)
	require.NoError(t, err)
	return relUuid
}

func TestCreateRelationshipsByUsername(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	resp, err := env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"bob"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Empty(t, resp.Unresolved)

	created := resp.Created[0]
	assert.Equal(t, "alice", created.OwnerName)
	assert.Equal(t, "bob", created.ReceiverName)
	assert.Equal(t, rel_type_enum.FRIEND, created.TypeByOwner)
	assert.Equal(t, rel_type_enum.PENDING, created.TypeByReceiver)

	// 好友请求事件挂在被邀请方一侧
	events, err := env.repos.Event.FindByRelationshipSide(created.Uuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event_type_enum.REQUEST, events[0].Type)

	// 被邀请方收到同步提醒
	hints := env.broker.HintsFor("bob")
	require.NotEmpty(t, hints)
	assert.Equal(t, "relationship", hints[0].Kind)
}

func TestCreateRelationshipsUnresolvedTargets(t *testing.T) {
	env := newTestEnv(t, "alice")

	resp, err := env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"alice", "nobody"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.ElementsMatch(t, []string{"alice", "nobody"}, resp.Unresolved)
}

func TestCreateRelationshipsEmailInvite(t *testing.T) {
	env := newTestEnv(t, "alice")

	resp, err := env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Emails: []string{"carol@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)

	created := resp.Created[0]
	assert.Equal(t, "carol@example.com", created.InviteEmail)
	assert.Empty(t, created.ReceiverName)

	// 邮箱邀请不产生事件，对方还没有账号
	events, err := env.repos.Event.FindByRelationshipUuids([]string{created.Uuid})
	require.NoError(t, err)
	assert.Empty(t, events)

	// 重复邀请同一邮箱进 unresolved
	resp, err = env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Emails: []string{"carol@example.com"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, []string{"carol@example.com"}, resp.Unresolved)
}

func TestCreateRelationshipsEmailOfRegisteredUser(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	resp, err := env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Emails: []string{"bob@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	// 邮箱已注册，直接按用户名建立关系
	assert.Equal(t, "bob", resp.Created[0].ReceiverName)
	assert.Empty(t, resp.Created[0].InviteEmail)
}

func TestAcceptInvite(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.invite(t, "alice", "bob")
	env.clk.Advance(10)

	view, err := env.svc.SetType("bob", relUuid, rel_type_enum.FRIEND)
	require.NoError(t, err)
	assert.Equal(t, rel_type_enum.FRIEND, view.TypeByOwner)
	assert.Equal(t, rel_type_enum.FRIEND, view.TypeByReceiver)

	// 被邀请方侧的好友请求事件已处理掉
	receiverEvents, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	assert.Empty(t, receiverEvents)

	// 接受事件挂在发起方一侧，由发起方同步时消费
	ownerEvents, err := env.repos.Event.FindByRelationshipSide(relUuid, rel_side_enum.OWNER)
	require.NoError(t, err)
	require.Len(t, ownerEvents, 1)
	assert.Equal(t, event_type_enum.ACCEPT, ownerEvents[0].Type)

	// 发起方收到同步提醒
	hints := env.broker.HintsFor("alice")
	require.NotEmpty(t, hints)
	assert.Equal(t, "relationship", hints[len(hints)-1].Kind)
}

func TestSetTypeNoOp(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	before, err := env.repos.Relationship.FindByUuid(relUuid)
	require.NoError(t, err)
	env.clk.Advance(100)

	view, err := env.svc.SetType("bob", relUuid, rel_type_enum.FRIEND)
	require.NoError(t, err)
	// 目标状态与当前一致，无副作用，时间戳不动
	assert.Equal(t, before.ModDate, view.ModDate)
}

func TestBlockPurgesEventsAndCascadesGroups(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	// 双方各自把关系归入一个分组
	require.NoError(t, env.repos.Group.Create(&model.ContactGroup{
		Uuid: "G1", OwnerName: "alice", RelOrder: model.StringList{relUuid}, ModDate: 1000,
	}))
	require.NoError(t, env.repos.Filing.Create(&model.GroupFiling{
		GroupUuid: "G1", RelationshipUuid: relUuid, Side: rel_side_enum.OWNER,
	}))
	require.NoError(t, env.repos.Group.Create(&model.ContactGroup{
		Uuid: "G2", OwnerName: "bob", RelOrder: model.StringList{relUuid}, ModDate: 1000,
	}))
	require.NoError(t, env.repos.Filing.Create(&model.GroupFiling{
		GroupUuid: "G2", RelationshipUuid: relUuid, Side: rel_side_enum.RECEIVER,
	}))
	// 双侧都有未读事件
	require.NoError(t, env.repos.Event.Create(&model.Event{
		Uuid: "E1", RelationshipUuid: relUuid, Side: rel_side_enum.OWNER, Type: event_type_enum.STATUS_REQUEST,
	}))

	env.clk.Advance(50)
	_, err := env.svc.SetType("alice", relUuid, rel_type_enum.BLOCKED)
	require.NoError(t, err)

	// 双侧事件全部清空
	events, err := env.repos.Event.FindByRelationshipUuids([]string{relUuid})
	require.NoError(t, err)
	assert.Empty(t, events)

	// 己方分组级联：出组且排序中摘除
	filings, err := env.repos.Filing.FindByRelationshipSide(relUuid, rel_side_enum.OWNER)
	require.NoError(t, err)
	assert.Empty(t, filings)
	grp, err := env.repos.Group.FindByUuid("G1")
	require.NoError(t, err)
	assert.NotContains(t, grp.RelOrder, relUuid)

	// 对方的归档不受影响
	peerFilings, err := env.repos.Filing.FindByRelationshipSide(relUuid, rel_side_enum.RECEIVER)
	require.NoError(t, err)
	assert.Len(t, peerFilings, 1)

	// 发生了级联，分组闸门时间戳被推进
	alice, err := env.repos.User.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, env.clk.NowMillis(), alice.GroupsModDate)
}

func TestBlockSkipsPurgeWhenPeerAlreadyBlocked(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	_, err := env.svc.SetType("bob", relUuid, rel_type_enum.BLOCKED)
	require.NoError(t, err)

	// 对方拉黑后产生的事件不应被己方的拉黑再次清空
	require.NoError(t, env.repos.Event.Create(&model.Event{
		Uuid: "E9", RelationshipUuid: relUuid, Side: rel_side_enum.OWNER, Type: event_type_enum.REQUEST,
	}))

	_, err = env.svc.SetType("alice", relUuid, rel_type_enum.BLOCKED)
	require.NoError(t, err)

	events, err := env.repos.Event.FindByRelationshipUuids([]string{relUuid})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestVisibilityCollapsing(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	_, err := env.svc.SetType("bob", relUuid, rel_type_enum.BLOCKED)
	require.NoError(t, err)

	rel, err := env.repos.Relationship.FindByUuid(relUuid)
	require.NoError(t, err)

	// 被拉黑方看到的对侧状态收敛为好友
	aliceView := relsvc.ToRespond(env.repos, rel, "alice")
	assert.Equal(t, rel_type_enum.FRIEND, aliceView.TypeByReceiver)

	// 拉黑方看到自己的真实状态
	bobView := relsvc.ToRespond(env.repos, rel, "bob")
	assert.Equal(t, rel_type_enum.BLOCKED, bobView.TypeByReceiver)
}

func TestSetTypeRejectsOutsiderAndBadType(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")
	relUuid := env.befriend(t, "alice", "bob")

	_, err := env.svc.SetType("carol", relUuid, rel_type_enum.BLOCKED)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 待确认状态只能由系统写入，不能经由接口设置
	_, err = env.svc.SetType("alice", relUuid, rel_type_enum.PENDING)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = env.svc.SetType("alice", relUuid, 9)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = env.svc.SetType("alice", "R_missing", rel_type_enum.BLOCKED)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestRefriendAfterDelete(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relUuid := env.befriend(t, "alice", "bob")

	_, err := env.svc.SetType("alice", relUuid, rel_type_enum.DELETED)
	require.NoError(t, err)

	resp, err := env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"bob"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)

	// 复用原关系，不产生第二条
	assert.Equal(t, relUuid, resp.Created[0].Uuid)
	rels, err := env.repos.Relationship.FindByUser("alice")
	require.NoError(t, err)
	assert.Len(t, rels, 1)
	assert.Equal(t, rel_type_enum.FRIEND, rels[0].TypeByOwner)

	// 双方已有活跃关系时重复邀请进 unresolved
	resp, err = env.svc.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, resp.Unresolved)
}

func TestUpdateRelationshipsPartialSuccess(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")
	relBob := env.befriend(t, "alice", "bob")
	relCarol := env.befriend(t, "alice", "carol")
	env.clk.Advance(30)

	resp, err := env.svc.UpdateRelationships("alice", request.UpdateRelationshipsRequest{
		Updates: []request.RelationshipUpdate{
			{Uuid: relBob, Type: rel_type_enum.DELETED},
			{Uuid: "R_missing", Type: rel_type_enum.DELETED},
			{Uuid: relCarol, Type: rel_type_enum.BLOCKED},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Updated, 2)
	assert.Equal(t, []string{"R_missing"}, resp.Unresolved)
}
