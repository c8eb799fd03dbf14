// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"sync/atomic"

	dbm "github.com/33cn/guesscoin/common/db"
	"github.com/33cn/guesscoin/types"
)

var (
	blockLastHeight = []byte("blockLastHeight")
	storeLog        = chainlog.New("submodule", "store")
)

//存储 height 对应的 header
func calcHeightToHeaderKey(height int64) []byte {
	return []byte(fmt.Sprintf("Header:%012d", height))
}

// BlockStore 区块高度和区块头的存储
type BlockStore struct {
	db     dbm.DB
	height int64
}

// NewBlockStore 从db中恢复当前高度
func NewBlockStore(db dbm.DB) (*BlockStore, error) {
	height, err := LoadBlockStoreHeight(db)
	if err != nil && err != types.ErrHeightNotExist {
		chainlog.Error("init::LoadBlockStoreHeight::database may be crash", "err", err)
		return nil, err
	}
	return &BlockStore{db: db, height: height}, nil
}

// Height 当前高度
func (bs *BlockStore) Height() int64 {
	return atomic.LoadInt64(&bs.height)
}

// SaveHeaders 批量保存 header 并更新最新高度
func (bs *BlockStore) SaveHeaders(headers []*types.Header) error {
	if len(headers) == 0 {
		return nil
	}
	batch := bs.db.NewBatch(true)
	for _, header := range headers {
		batch.Set(calcHeightToHeaderKey(header.Height), types.Encode(header))
	}
	last := headers[len(headers)-1].Height
	batch.Set(blockLastHeight, types.Encode(&types.Int64{Data: last}))
	if err := batch.Write(); err != nil {
		return err
	}
	atomic.StoreInt64(&bs.height, last)
	storeLog.Debug("SaveHeaders", "height", last, "count", len(headers))
	return nil
}

// GetHeader 读取指定高度的 header
func (bs *BlockStore) GetHeader(height int64) (*types.Header, error) {
	value, err := bs.db.Get(calcHeightToHeaderKey(height))
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrHeightNotExist
	}
	if err != nil {
		return nil, err
	}
	var header types.Header
	if err := types.Decode(value, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// LoadBlockStoreHeight 没有任何区块时高度为0
func LoadBlockStoreHeight(db dbm.DB) (int64, error) {
	value, err := db.Get(blockLastHeight)
	if err == dbm.ErrNotFoundInDb {
		return 0, types.ErrHeightNotExist
	}
	if err != nil {
		storeLog.Error("LoadBlockStoreHeight", "error", err)
		return 0, err
	}
	var height types.Int64
	if err := types.Decode(value, &height); err != nil {
		return 0, err
	}
	return height.Data, nil
}
