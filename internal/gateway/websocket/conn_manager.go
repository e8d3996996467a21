// Package websocket 维护客户端长连接并下发同步提醒
// 服务端不通过长连接收业务数据，只做"数据变了，来同步"的单向推送
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/pkg/constants"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 一条客户端长连接
type Client struct {
	Conn     *websocket.Conn
	Username string
	SendBack chan []byte // 待下发的提醒

	mu     sync.Mutex // 保护 closed，投递与关闭互斥
	closed bool
}

// Write 从 SendBack 通道读取提醒并写入 websocket
func (c *Client) Write() {
	zap.L().Info("ws write goroutine start", zap.String("username", c.Username))
	for message := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error(err.Error())
			return // 直接断开websocket
		}
	}
}

// send 投递一条提醒，连接已关闭或缓冲区满时返回 false
func (c *Client) send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendBack <- message:
		return true
	default:
		return false
	}
}

// shutdown 关闭下发通道和底层连接，幂等
// 关闭前先拿到投递锁，保证不会与 send 并发撞上已关闭的通道
func (c *Client) shutdown() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.SendBack)
	}
	c.mu.Unlock()
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

// Gateway 长连接网关
// 消费 Broker 中的同步提醒，推送给在线的目标用户
type Gateway struct {
	broker  notify.Broker
	mu      sync.RWMutex
	clients map[string]*Client // username -> client，同名新连接顶掉旧连接
	cancel  context.CancelFunc
}

// Gate 全局网关实例，由 Init 初始化
var Gate *Gateway

// Init 创建网关并启动分发协程
func Init(broker notify.Broker) {
	Gate = &Gateway{
		broker:  broker,
		clients: make(map[string]*Client),
	}
	ctx, cancel := context.WithCancel(context.Background())
	Gate.cancel = cancel
	go Gate.dispatch(ctx)
}

// dispatch 分发循环：消费提醒，推给在线用户，不在线直接丢弃
func (g *Gateway) dispatch(ctx context.Context) {
	zap.L().Info("sync hint dispatcher start")
	for {
		hint, err := g.broker.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Error("consume sync hint failed", zap.Error(err))
			continue
		}
		g.push(hint)
	}
}

// push 将提醒推给目标用户的连接
func (g *Gateway) push(hint *notify.SyncHint) {
	g.mu.RLock()
	client, ok := g.clients[hint.Username]
	g.mu.RUnlock()
	if !ok {
		return // 不在线，等客户端下次主动同步
	}

	message, err := json.Marshal(hint)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	if !client.send(message) {
		zap.L().Warn("hint dropped", zap.String("username", hint.Username))
	}
}

// register 注册连接，同名旧连接被关闭
func (g *Gateway) register(client *Client) {
	g.mu.Lock()
	old, replaced := g.clients[client.Username]
	g.clients[client.Username] = client
	g.mu.Unlock()
	if replaced {
		old.shutdown()
	}
}

// unregister 注销连接（只在仍是当前连接时移除）
func (g *Gateway) unregister(client *Client) {
	g.mu.Lock()
	if cur, ok := g.clients[client.Username]; ok && cur == client {
		delete(g.clients, client.Username)
	}
	g.mu.Unlock()
	client.shutdown()
}

// Close 停止分发并断开所有连接
func (g *Gateway) Close() {
	if g.cancel != nil {
		g.cancel()
	}
	g.mu.Lock()
	clients := g.clients
	g.clients = make(map[string]*Client)
	g.mu.Unlock()
	for _, client := range clients {
		client.shutdown()
	}
}

// NewClientInit 客户端发起 ws 握手时调用，username 来自 JWT
func NewClientInit(c *gin.Context, username string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &Client{
		Conn:     conn,
		Username: username,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	Gate.register(client)
	go client.Write()

	// 读循环只用于感知断开，收到的内容一律忽略
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				Gate.unregister(client)
				return
			}
		}
	}()
}
