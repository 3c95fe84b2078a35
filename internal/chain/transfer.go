package chain

import (
	"context"
)

// Transferrer 原子转账原语
//
// 由环境提供的全有或全无的价值转移能力。返回错误时调用方必须视为
// 转账完全未发生；任何结果不确定的情况同样按失败处理（fail-closed）。
type Transferrer interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// Clock 逻辑时钟
//
// 以链上区块号作为操作的逻辑时间，随操作序列单调不减。
type Clock interface {
	LatestBlock(ctx context.Context) (int64, error)
}

// Chain 转账原语与逻辑时钟的组合
type Chain interface {
	Transferrer
	Clock
}
