package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/dao/mysql/repository"
	"huoban_contact_server/internal/dto/request"
	"huoban_contact_server/internal/mocks"
	"huoban_contact_server/internal/model"
	"huoban_contact_server/internal/service"
	groupsvc "huoban_contact_server/internal/service/group"
	relsvc "huoban_contact_server/internal/service/relationship"
	"huoban_contact_server/pkg/enum/relationship/rel_side_enum"
	"huoban_contact_server/pkg/enum/relationship/rel_type_enum"
	"huoban_contact_server/pkg/errorx"
)

type testEnv struct {
	repos  *repository.Repositories
	clk    *mocks.FakeClock
	broker *mocks.FakeBroker
	rels   service.RelationshipService
	groups service.GroupService
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
		}))
	}
	rels := relsvc.NewRelationshipService(repos, clk, broker)
	return &testEnv{
		repos:  repos,
		clk:    clk,
		broker: broker,
		rels:   rels,
		groups: groupsvc.NewGroupService(repos, clk, rels, broker),
	}
}

// befriend 建立双向好友关系并返回关系 uuid
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

func TestCreateNewGroupFilesRecognizedRelationships(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")
	relBob := env.befriend(t, "alice", "bob")
	relCarol := env.befriend(t, "alice", "carol")

	resp, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:   "同事",
		FileIds: []string{relBob, relCarol, relBob, "R_missing"},
	})
	require.NoError(t, err)

	// 重复 id 只归档一次，无法识别的进 unresolved
	assert.Equal(t, []string{relBob, relCarol}, resp.Group.RelOrder)
	assert.Equal(t, []string{"R_missing"}, resp.Unresolved)

	// 归档行带己方的关系侧
	filings, err := env.repos.Filing.FindByGroupUuid(resp.Group.Uuid)
	require.NoError(t, err)
	require.Len(t, filings, 2)
	for _, filing := range filings {
		assert.Equal(t, rel_side_enum.OWNER, filing.Side)
	}

	// 新分组追加到用户排序末尾，闸门时间戳推进
	alice, err := env.repos.User.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, model.StringList{resp.Group.Uuid}, alice.GroupOrder)
	assert.Equal(t, env.clk.NowMillis(), alice.GroupsModDate)
}

func TestCreateNewGroupRejectsNonFriendRelationship(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	// 只发出了邀请，对方尚未接受：对方视角下还不是好友
	resp, err := env.rels.CreateRelationships("alice", request.CreateRelationshipsRequest{
		Usernames: []string{"bob"},
	})
	require.NoError(t, err)
	relUuid := resp.Created[0].Uuid

	// bob 一侧是 PENDING，bob 不能把这段关系归入自己的分组
	created, err := env.groups.CreateNewGroup("bob", request.CreateNewGroupRequest{
		Title:   "朋友",
		FileIds: []string{relUuid},
	})
	require.NoError(t, err)
	assert.Empty(t, created.Group.RelOrder)
	assert.Equal(t, []string{relUuid}, created.Unresolved)
}

func TestCreateNewGroupWithBlockAndDelete(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")
	relBob := env.befriend(t, "alice", "bob")
	relCarol := env.befriend(t, "alice", "carol")

	resp, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:     "清理",
		BlockIds:  []string{relBob},
		DeleteIds: []string{relCarol, "R_missing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"R_missing"}, resp.Unresolved)

	// 顺带的拉黑/删除走了状态机
	bobRel, err := env.repos.Relationship.FindByUuid(relBob)
	require.NoError(t, err)
	assert.Equal(t, rel_type_enum.BLOCKED, bobRel.TypeByOwner)
	carolRel, err := env.repos.Relationship.FindByUuid(relCarol)
	require.NoError(t, err)
	assert.Equal(t, rel_type_enum.DELETED, carolRel.TypeByOwner)
}

func TestUpdateGroupReconcilesOrder(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol", "dave")
	relBob := env.befriend(t, "alice", "bob")
	relCarol := env.befriend(t, "alice", "carol")
	relDave := env.befriend(t, "alice", "dave")

	created, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:   "朋友",
		FileIds: []string{relBob, relCarol},
	})
	require.NoError(t, err)
	groupUuid := created.Group.Uuid
	env.clk.Advance(20)

	// 新排序：carol 提前，bob 出组，dave 入组，未知 id 丢弃
	updated, err := env.groups.UpdateGroup("alice", request.UpdateGroupRequest{
		Uuid:  groupUuid,
		Order: []string{relCarol, "R_missing", relDave},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{relCarol, relDave}, updated.RelOrder)
	assert.Equal(t, env.clk.NowMillis(), updated.ModDate)

	// 归档行与排序一致
	filings, err := env.repos.Filing.FindByGroupUuid(groupUuid)
	require.NoError(t, err)
	filed := make([]string, 0, len(filings))
	for _, filing := range filings {
		filed = append(filed, filing.RelationshipUuid)
	}
	assert.ElementsMatch(t, []string{relCarol, relDave}, filed)
}

func TestUpdateGroupTitleOnlyKeepsMembers(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relBob := env.befriend(t, "alice", "bob")

	created, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:   "旧标题",
		FileIds: []string{relBob},
	})
	require.NoError(t, err)

	// Order 为 nil 时只改标题，不动成员
	updated, err := env.groups.UpdateGroup("alice", request.UpdateGroupRequest{
		Uuid:  created.Group.Uuid,
		Title: "新标题",
	})
	require.NoError(t, err)
	assert.Equal(t, "新标题", updated.Title)
	assert.Equal(t, []string{relBob}, updated.RelOrder)
}

func TestUpdateGroupForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	created, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{Title: "私有"})
	require.NoError(t, err)

	_, err = env.groups.UpdateGroup("bob", request.UpdateGroupRequest{
		Uuid:  created.Group.Uuid,
		Title: "篡改",
	})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	err = env.groups.DeleteGroup("bob", created.Group.Uuid)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestDeleteGroupClearsFilingsAndOrder(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")
	relBob := env.befriend(t, "alice", "bob")

	created, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:   "待删",
		FileIds: []string{relBob},
	})
	require.NoError(t, err)
	groupUuid := created.Group.Uuid
	env.clk.Advance(20)

	require.NoError(t, env.groups.DeleteGroup("alice", groupUuid))

	_, err = env.repos.Group.FindByUuid(groupUuid)
	assert.True(t, errorx.IsNotFound(err))
	filings, err := env.repos.Filing.FindByGroupUuid(groupUuid)
	require.NoError(t, err)
	assert.Empty(t, filings)

	alice, err := env.repos.User.FindByUsername("alice")
	require.NoError(t, err)
	assert.NotContains(t, alice.GroupOrder, groupUuid)
	assert.Equal(t, env.clk.NowMillis(), alice.GroupsModDate)
}

func TestBlockCascadesOutOfGroups(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")
	relBob := env.befriend(t, "alice", "bob")
	relCarol := env.befriend(t, "alice", "carol")

	created, err := env.groups.CreateNewGroup("alice", request.CreateNewGroupRequest{
		Title:   "朋友",
		FileIds: []string{relBob, relCarol},
	})
	require.NoError(t, err)
	env.clk.Advance(20)

	_, err = env.rels.SetType("alice", relBob, rel_type_enum.BLOCKED)
	require.NoError(t, err)

	// 被拉黑的关系从分组排序和归档中同时消失
	grp, err := env.repos.Group.FindByUuid(created.Group.Uuid)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{relCarol}, grp.RelOrder)
	filings, err := env.repos.Filing.FindByRelationshipSide(relBob, rel_side_enum.OWNER)
	require.NoError(t, err)
	assert.Empty(t, filings)
}
