// Package kv 提供本地键值存储的边界抽象。
//
// 模板与记录各占一个固定键，整集合读写（读全部、内存修改、写全部），
// 存储层不提供部分更新。
package kv

import (
	"context"
	"errors"
)

// ErrNotFound 表示键不存在。调用方通常将其视为空集合。
var ErrNotFound = errors.New("kv: key not found")

// Store 是键值存储的最小接口。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
