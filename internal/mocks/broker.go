package mocks

import (
	"context"
	"sync"

	"huoban_contact_server/internal/infrastructure/notify"
)

// FakeBroker 记录所有发布的同步提醒，供测试断言
type FakeBroker struct {
	mu    sync.Mutex
	hints []notify.SyncHint
}

func NewFakeBroker() *FakeBroker {
	return &FakeBroker{}
}

func (b *FakeBroker) Publish(ctx context.Context, hint *notify.SyncHint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hints = append(b.hints, *hint)
	return nil
}

func (b *FakeBroker) Consume(ctx context.Context) (*notify.SyncHint, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *FakeBroker) Close() error {
	return nil
}

// Hints 返回已发布提醒的副本
func (b *FakeBroker) Hints() []notify.SyncHint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]notify.SyncHint{}, b.hints...)
}

// HintsFor 返回发给指定用户的提醒
func (b *FakeBroker) HintsFor(username string) []notify.SyncHint {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]notify.SyncHint, 0)
	for _, hint := range b.hints {
		if hint.Username == username {
			out = append(out, hint)
		}
	}
	return out
}
