package notify

import (
	"context"
	"time"

	myconfig "huoban_contact_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// kafkaBroker kafka 实现，多实例部署时使用
// 按用户名做 key，同一用户的提醒落在同一分区保持有序
type kafkaBroker struct {
	writer *kafka.Writer
	reader *kafka.Reader
}

// NewKafkaBroker 根据配置初始化 kafka 读写端
func NewKafkaBroker() Broker {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.SyncTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.SyncTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "contact_sync",
		StartOffset:    kafka.LastOffset,
	})
	return &kafkaBroker{writer: writer, reader: reader}
}

// CreateSyncTopic 创建提醒主题，部署时手动调用一次
func CreateSyncTopic() error {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	conn, err := kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             kafkaConfig.SyncTopic,
		NumPartitions:     kafkaConfig.Partition,
		ReplicationFactor: 1,
	})
}

func (b *kafkaBroker) Publish(ctx context.Context, hint *SyncHint) error {
	value, err := encodeHint(hint)
	if err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(hint.Username),
		Value: value,
	}); err != nil {
		zap.L().Error("kafka publish sync hint failed", zap.Error(err))
		return err
	}
	return nil
}

func (b *kafkaBroker) Consume(ctx context.Context) (*SyncHint, error) {
	msg, err := b.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return decodeHint(msg.Value)
}

func (b *kafkaBroker) Close() error {
	if err := b.writer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	return b.reader.Close()
}

// NewBroker 根据 messageMode 选择实现
func NewBroker() Broker {
	if myconfig.GetConfig().KafkaConfig.MessageMode == "kafka" {
		return NewKafkaBroker()
	}
	return NewChannelBroker()
}
