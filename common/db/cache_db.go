// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"github.com/33cn/guesscoin/common"
	lru "github.com/hashicorp/golang-lru"
)

// CacheDB 带读缓存的数据库, 写操作直接落盘并更新缓存
type CacheDB struct {
	DB
	cache *lru.Cache
}

// NewCacheDB size <= 0 时直接返回 db
func NewCacheDB(db DB, size int) (DB, error) {
	if size <= 0 {
		return db, nil
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CacheDB{DB: db, cache: cache}, nil
}

// Get get
func (c *CacheDB) Get(key []byte) ([]byte, error) {
	if v, ok := c.cache.Get(string(key)); ok {
		return common.CopyBytes(v.([]byte)), nil
	}
	value, err := c.DB.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), common.CopyBytes(value))
	return value, nil
}

// Set set
func (c *CacheDB) Set(key []byte, value []byte) error {
	if err := c.DB.Set(key, value); err != nil {
		c.cache.Remove(string(key))
		return err
	}
	c.cache.Add(string(key), common.CopyBytes(value))
	return nil
}

// Delete delete
func (c *CacheDB) Delete(key []byte) error {
	c.cache.Remove(string(key))
	return c.DB.Delete(key)
}

// NewBatch 写入成功后失效对应的缓存
func (c *CacheDB) NewBatch(sync bool) Batch {
	return &cacheBatch{Batch: c.DB.NewBatch(sync), cache: c.cache}
}

type cacheBatch struct {
	Batch
	cache *lru.Cache
	keys  []string
}

func (b *cacheBatch) Set(key, value []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Set(key, value)
}

func (b *cacheBatch) Delete(key []byte) {
	b.keys = append(b.keys, string(key))
	b.Batch.Delete(key)
}

func (b *cacheBatch) Write() error {
	err := b.Batch.Write()
	for _, k := range b.keys {
		b.cache.Remove(k)
	}
	return err
}

func (b *cacheBatch) Reset() {
	b.keys = b.keys[:0]
	b.Batch.Reset()
}
