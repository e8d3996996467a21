// Package clock 提供可注入的毫秒时钟
// 业务层所有 mod_date 都经由 Clock 获取，禁止直接读墙钟，方便测试固定时间
package clock

import "time"

// Clock 毫秒时间戳来源
type Clock interface {
	// NowMillis 返回当前 Unix 毫秒时间戳
	NowMillis() int64
}

type systemClock struct{}

func (systemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// System 返回真实墙钟实现
func System() Clock {
	return systemClock{}
}
