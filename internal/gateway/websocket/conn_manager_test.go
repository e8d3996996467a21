package websocket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/pkg/constants"
)

func newTestClient(username string) *Client {
	return &Client{
		Username: username,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
}

func TestRegisterReplacesOldConnection(t *testing.T) {
	g := &Gateway{clients: make(map[string]*Client)}
	first := newTestClient("alice")
	g.register(first)

	g.push(&notify.SyncHint{Username: "alice", Kind: "relationship"})
	require.Len(t, first.SendBack, 1)

	// 同名新连接顶掉旧连接，旧连接不再接收投递
	second := newTestClient("alice")
	g.register(second)
	assert.False(t, first.send([]byte("late")))

	g.push(&notify.SyncHint{Username: "alice", Kind: "group"})
	assert.Len(t, second.SendBack, 1)
}

func TestUnregisterOnlyRemovesCurrentConnection(t *testing.T) {
	g := &Gateway{clients: make(map[string]*Client)}
	first := newTestClient("alice")
	g.register(first)
	second := newTestClient("alice")
	g.register(second)

	// 旧连接的读循环迟到的注销不能摘掉新连接
	g.unregister(first)
	g.push(&notify.SyncHint{Username: "alice", Kind: "event"})
	assert.Len(t, second.SendBack, 1)
}

func TestPushSafeDuringReconnect(t *testing.T) {
	g := &Gateway{clients: make(map[string]*Client)}
	g.register(newTestClient("alice"))

	// 推送与重连并发进行，投递与通道关闭互斥，不允许 panic
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			g.push(&notify.SyncHint{Username: "alice", Kind: "relationship"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			g.register(newTestClient("alice"))
		}
	}()
	wg.Wait()
}

func TestPushSkipsOfflineUser(t *testing.T) {
	g := &Gateway{clients: make(map[string]*Client)}
	g.push(&notify.SyncHint{Username: "nobody", Kind: "user"})

	client := newTestClient("alice")
	g.register(client)
	g.Close()
	assert.False(t, client.send([]byte("after close")))
}
