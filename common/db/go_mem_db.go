// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sync"

	"github.com/33cn/guesscoin/common"
	"github.com/33cn/guesscoin/types"
	log "github.com/inconshreveable/log15"
)

var dlog = log.New("module", "db")

// memdb 应该无需区分同步与异步操作
func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB 内存数据库, 测试和临时链使用
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return common.CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

// Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = common.CopyBytes(value)
	return nil
}

// Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// Close nothing to release
func (db *GoMemDB) Close() {
}

// NewBatch new
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type memBatch struct {
	db     *GoMemDB
	writes []*types.KeyValue
	size   int
}

func (b *memBatch) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	b.writes = append(b.writes, &types.KeyValue{Key: common.CopyBytes(key), Value: common.CopyBytes(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, &types.KeyValue{Key: common.CopyBytes(key)})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, kv := range b.writes {
		if kv.Value == nil {
			delete(b.db.db, string(kv.Key))
		} else {
			b.db.db[string(kv.Key)] = kv.Value
		}
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
