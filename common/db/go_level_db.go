// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoLevelDB(name, dir, cache)
	}
	registerDBCreator(LevelDBBackendStr, dbCreator, false)
	registerDBCreator(GoLevelDBBackendStr, dbCreator, false)
}

// GoLevelDB leveldb 后端
type GoLevelDB struct {
	db *leveldb.DB
}

// NewGoLevelDB 打开 dir/name.db
func NewGoLevelDB(name string, dir string, cache int) (*GoLevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	if cache <= 0 {
		cache = 64
	}
	handles := cache
	if handles < 16 {
		handles = 16
	}
	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		dlog.Warn("NewGoLevelDB recover", "path", dbPath)
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

// Get get
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == lerrors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		dlog.Error("Get", "error", err)
		return nil, errors.Wrap(err, "leveldb get")
	}
	return res, nil
}

// Set set
func (db *GoLevelDB) Set(key []byte, value []byte) error {
	if err := db.db.Put(key, value, nil); err != nil {
		dlog.Error("Set", "error", err)
		return errors.Wrap(err, "leveldb put")
	}
	return nil
}

// Delete delete
func (db *GoLevelDB) Delete(key []byte) error {
	if err := db.db.Delete(key, nil); err != nil {
		dlog.Error("Delete", "error", err)
		return errors.Wrap(err, "leveldb delete")
	}
	return nil
}

// DB 底层的 leveldb
func (db *GoLevelDB) DB() *leveldb.DB {
	return db.db
}

// Close close
func (db *GoLevelDB) Close() {
	if err := db.db.Close(); err != nil {
		dlog.Error("Close", "error", err)
	}
}

// NewBatch new
func (db *GoLevelDB) NewBatch(sync bool) Batch {
	batch := new(leveldb.Batch)
	wop := &opt.WriteOptions{Sync: sync}
	return &goLevelDBBatch{db, batch, wop, 0}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
	wop   *opt.WriteOptions
	size  int
}

func (mBatch *goLevelDBBatch) Set(key, value []byte) {
	mBatch.batch.Put(key, value)
	mBatch.size += len(value)
}

func (mBatch *goLevelDBBatch) Delete(key []byte) {
	mBatch.batch.Delete(key)
	mBatch.size++
}

func (mBatch *goLevelDBBatch) Write() error {
	if err := mBatch.db.db.Write(mBatch.batch, mBatch.wop); err != nil {
		dlog.Error("Write", "error", err)
		return errors.Wrap(err, "leveldb batch write")
	}
	return nil
}

func (mBatch *goLevelDBBatch) ValueSize() int {
	return mBatch.size
}

func (mBatch *goLevelDBBatch) Reset() {
	mBatch.batch.Reset()
	mBatch.size = 0
}
