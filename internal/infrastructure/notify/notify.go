// Package notify 提供同步提醒的投递通道
// 写操作完成后向对端投递一条提醒，客户端收到后自行发起增量同步
// 支持两种模式：进程内 channel（单机）和 kafka（多实例）
package notify

import (
	"context"
	"encoding/json"

	"huoban_contact_server/pkg/constants"

	"go.uber.org/zap"
)

// SyncHint 同步提醒
// 只携带"谁的什么数据变了"，不携带数据本身
type SyncHint struct {
	Username string `json:"username"` // 提醒接收方
	Kind     string `json:"kind"`     // 变更种类：relationship/group/event/user
	ModDate  int64  `json:"modDate"`  // 变更时间戳（毫秒）
}

// Broker 同步提醒投递接口
type Broker interface {
	// Publish 投递一条提醒，投递失败只记录日志不阻断业务
	Publish(ctx context.Context, hint *SyncHint) error
	// Consume 阻塞消费提醒，供网关分发协程调用
	Consume(ctx context.Context) (*SyncHint, error)
	// Close 关闭投递通道
	Close() error
}

// channelBroker 进程内 channel 实现，单机部署使用
type channelBroker struct {
	hints chan *SyncHint
}

// NewChannelBroker 创建进程内提醒通道
func NewChannelBroker() Broker {
	return &channelBroker{
		hints: make(chan *SyncHint, constants.CHANNEL_SIZE),
	}
}

func (b *channelBroker) Publish(ctx context.Context, hint *SyncHint) error {
	select {
	case b.hints <- hint:
	default:
		// 通道满了直接丢弃，客户端下次主动同步也能拿到数据
		zap.L().Warn("sync hint channel full, hint dropped",
			zap.String("username", hint.Username), zap.String("kind", hint.Kind))
	}
	return nil
}

func (b *channelBroker) Consume(ctx context.Context) (*SyncHint, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case hint, ok := <-b.hints:
		if !ok {
			return nil, context.Canceled
		}
		return hint, nil
	}
}

func (b *channelBroker) Close() error {
	close(b.hints)
	return nil
}

// encodeHint 序列化提醒为 JSON，kafka 消息体使用
func encodeHint(hint *SyncHint) ([]byte, error) {
	return json.Marshal(hint)
}

// decodeHint 反序列化 kafka 消息体
func decodeHint(data []byte) (*SyncHint, error) {
	var hint SyncHint
	if err := json.Unmarshal(data, &hint); err != nil {
		return nil, err
	}
	return &hint, nil
}
