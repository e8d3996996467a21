package mocks

import "sync/atomic"

// FakeClock 可控时钟，测试中显式推进
type FakeClock struct {
	now int64
}

// NewFakeClock 从给定毫秒时间戳开始
func NewFakeClock(startMillis int64) *FakeClock {
	return &FakeClock{now: startMillis}
}

func (c *FakeClock) NowMillis() int64 {
	return atomic.LoadInt64(&c.now)
}

// Advance 推进时钟
func (c *FakeClock) Advance(millis int64) {
	atomic.AddInt64(&c.now, millis)
}
