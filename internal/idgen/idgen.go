// Package idgen 生成单调递增的毫秒级标识符。
//
// 历史实现直接使用 currentTimeMillis 作为 ID，快速连续保存时会碰撞。
// 这里在单写者纪律下用互斥量守护"上一次发出的值"：取当前 Unix 毫秒，
// 若不大于上一次则在其基础上加一，因此 ID 既抗碰撞又保持与创建顺序
// 一致的可排序性（十进制字符串按数值比较即创建序）。
package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator 发出严格递增的毫秒 ID。零值即可使用。
type Generator struct {
	mu   sync.Mutex
	last int64
}

// Next 返回下一个 ID 的十进制字符串形式。
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}

var defaultGenerator Generator

// Next 使用包级默认生成器发出 ID。
func Next() string {
	return defaultGenerator.Next()
}
