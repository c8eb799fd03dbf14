// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 状态数据库的后端实现, 支持 leveldb 和 memdb
package db

import (
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

// ErrNotFoundInDb 数据库中没有这个key
var ErrNotFoundInDb = types.ErrNotFound

// KV 最简单的读写接口, 执行器只依赖这个
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// DB 数据库后端
type DB interface {
	KV
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	Close()
}

// Batch 批量写, Write 之前的修改都不可见
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// backend names
const (
	LevelDBBackendStr   = "leveldb"
	GoLevelDBBackendStr = "goleveldb"
	MemDBBackendStr     = "memdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按后端名创建数据库
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, errors.Wrap(types.ErrDBBackendNotFound, backend)
	}
	db, err := creator(name, dir, int(cache))
	if err != nil {
		dlog.Error("NewDB", "backend", backend, "dir", dir, "err", err)
		return nil, errors.Wrapf(err, "NewDB %s", backend)
	}
	return db, nil
}
