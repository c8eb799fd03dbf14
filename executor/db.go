// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/guesscoin/common/db"
	"github.com/33cn/guesscoin/types"
)

// StateDB state db, 交易执行期间的修改只在内存中, Commit 后一次性写入
type StateDB struct {
	db      dbm.DB
	txcache map[string][]byte
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{
		db:      db,
		txcache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.txcache = make(map[string][]byte)
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 把事务中的修改写入数据库
func (s *StateDB) Commit() error {
	defer s.resetTx()
	if len(s.txcache) == 0 {
		return nil
	}
	batch := s.db.NewBatch(true)
	keys := make([]string, 0, len(s.txcache))
	for k := range s.txcache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.txcache[k]
		if v == nil {
			batch.Delete([]byte(k))
		} else {
			batch.Set([]byte(k), v)
		}
	}
	return batch.Write()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = make(map[string][]byte)
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	return s.db.Get(key)
}

// Set 事务外直接写数据库, value 为 nil 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if !s.intx {
		if value == nil {
			return s.db.Delete(key)
		}
		return s.db.Set(key, value)
	}
	if value == nil {
		s.txcache[skey] = nil
		return nil
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.txcache[skey] = v
	return nil
}
