// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockchain 本地链的区块高度, 合约的轮次时钟
package blockchain

import (
	"sync"
	"time"

	dbm "github.com/33cn/guesscoin/common/db"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var chainlog = log.New("module", "blockchain")

// MaxMineCount 一次最多出块个数
const MaxMineCount int64 = 100000

// BlockChain 本地链
type BlockChain struct {
	mu         sync.Mutex
	blockStore *BlockStore
	// 测试中替换
	now func() time.Time
}

// New 从db恢复链高度
func New(db dbm.DB) (*BlockChain, error) {
	store, err := NewBlockStore(db)
	if err != nil {
		return nil, err
	}
	return &BlockChain{blockStore: store, now: time.Now}, nil
}

// Height 当前区块高度, 只会增加
func (chain *BlockChain) Height() int64 {
	return chain.blockStore.Height()
}

// BlockTime 当前区块的时间, 没有区块时为0
func (chain *BlockChain) BlockTime() int64 {
	height := chain.Height()
	if height == 0 {
		return 0
	}
	header, err := chain.blockStore.GetHeader(height)
	if err != nil {
		chainlog.Error("BlockTime", "height", height, "err", err)
		return 0
	}
	return header.BlockTime
}

// Mine 出 n 个空块, 返回新的高度
func (chain *BlockChain) Mine(n int64) (int64, error) {
	if n < 1 || n > MaxMineCount {
		return 0, errors.Wrapf(types.ErrBlockCount, "count %d", n)
	}
	chain.mu.Lock()
	defer chain.mu.Unlock()

	height := chain.Height()
	blocktime := chain.now().Unix()
	headers := make([]*types.Header, 0, n)
	for i := int64(1); i <= n; i++ {
		headers = append(headers, &types.Header{Height: height + i, BlockTime: blocktime})
	}
	if err := chain.blockStore.SaveHeaders(headers); err != nil {
		return 0, err
	}
	chainlog.Debug("Mine", "from", height, "to", height+n)
	return height + n, nil
}
