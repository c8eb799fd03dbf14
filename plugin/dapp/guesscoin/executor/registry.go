// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"
	"sort"

	dbm "github.com/33cn/guesscoin/common/db"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

/*
状态数据库中的 key:

	mavl-guesscoin-table-<id>  Table
	mavl-guesscoin-lastid      最后分配的 id
	mavl-guesscoin-open        还在下注阶段的 id 列表
	mavl-guesscoin-dist-<id>   DistributionRecord, 结算后写入一次
*/

var (
	keyPrefix    = "mavl-" + gty.GuessCoinX + "-"
	lastIDKey    = []byte(keyPrefix + "lastid")
	openTableKey = []byte(keyPrefix + "open")
)

// TableKey 桌子的 key
func TableKey(id int64) []byte {
	return []byte(fmt.Sprintf("%stable-%020d", keyPrefix, id))
}

// DistributionKey 结算记录的 key
func DistributionKey(id int64) []byte {
	return []byte(fmt.Sprintf("%sdist-%020d", keyPrefix, id))
}

func readTable(db dbm.KV, id int64) (*gty.Table, error) {
	data, err := db.Get(TableKey(id))
	if err != nil {
		if errors.Cause(err) == dbm.ErrNotFoundInDb {
			return nil, errors.Wrapf(gty.ErrNotFound, "table %d", id)
		}
		return nil, err
	}
	var table gty.Table
	if err := types.Decode(data, &table); err != nil {
		glog.Error("readTable", "id", id, "decode", err)
		return nil, err
	}
	return &table, nil
}

func readLastID(db dbm.KV) (int64, error) {
	data, err := db.Get(lastIDKey)
	if err != nil {
		if errors.Cause(err) == dbm.ErrNotFoundInDb {
			return 0, nil
		}
		return 0, err
	}
	var id types.Int64
	if err := types.Decode(data, &id); err != nil {
		return 0, err
	}
	return id.Data, nil
}

func readOpenTables(db dbm.KV) (*gty.TableIDList, error) {
	data, err := db.Get(openTableKey)
	if err != nil {
		if errors.Cause(err) == dbm.ErrNotFoundInDb {
			return &gty.TableIDList{}, nil
		}
		return nil, err
	}
	var list gty.TableIDList
	if err := types.Decode(data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func readDistribution(db dbm.KV, id int64) (*gty.DistributionRecord, error) {
	data, err := db.Get(DistributionKey(id))
	if err != nil {
		if errors.Cause(err) == dbm.ErrNotFoundInDb {
			return nil, errors.Wrapf(gty.ErrNotFound, "distribution of table %d", id)
		}
		return nil, err
	}
	var record gty.DistributionRecord
	if err := types.Decode(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// registry 对桌子的读写, 所有修改同时记录到 kv 里作为回执
type registry struct {
	db dbm.KV
	kv []*types.KeyValue
}

func newRegistry(db dbm.KV) *registry {
	return &registry{db: db}
}

func (r *registry) set(key, value []byte) error {
	if err := r.db.Set(key, value); err != nil {
		return err
	}
	r.kv = append(r.kv, &types.KeyValue{Key: key, Value: value})
	return nil
}

func (r *registry) table(id int64) (*gty.Table, error) {
	return readTable(r.db, id)
}

func (r *registry) openCount() (int64, error) {
	list, err := readOpenTables(r.db)
	if err != nil {
		return 0, err
	}
	return int64(len(list.IDs)), nil
}

// nextID 分配下一个 id, 从 1 开始
func (r *registry) nextID() (int64, error) {
	last, err := readLastID(r.db)
	if err != nil {
		return 0, err
	}
	id := last + 1
	if err := r.set(lastIDKey, types.Encode(&types.Int64{Data: id})); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *registry) saveTable(table *gty.Table) error {
	return r.set(TableKey(table.ID), types.Encode(table))
}

func (r *registry) saveDistribution(record *gty.DistributionRecord) error {
	return r.set(DistributionKey(record.TableID), types.Encode(record))
}

func (r *registry) addOpen(id int64) error {
	list, err := readOpenTables(r.db)
	if err != nil {
		return err
	}
	list.IDs = append(list.IDs, id)
	sort.Slice(list.IDs, func(i, j int) bool { return list.IDs[i] < list.IDs[j] })
	return r.set(openTableKey, types.Encode(list))
}

func (r *registry) removeOpen(id int64) error {
	list, err := readOpenTables(r.db)
	if err != nil {
		return err
	}
	ids := list.IDs[:0]
	for _, v := range list.IDs {
		if v != id {
			ids = append(ids, v)
		}
	}
	list.IDs = ids
	return r.set(openTableKey, types.Encode(list))
}

// listOpenTables 按 id 升序返回还在下注阶段的桌子
func listOpenTables(db dbm.KV) ([]*gty.Table, error) {
	list, err := readOpenTables(db)
	if err != nil {
		return nil, err
	}
	tables := make([]*gty.Table, 0, len(list.IDs))
	for _, id := range list.IDs {
		table, err := readTable(db, id)
		if err != nil {
			return nil, err
		}
		if table.IsOpen() {
			tables = append(tables, table)
		}
	}
	return tables, nil
}
