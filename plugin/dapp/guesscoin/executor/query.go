// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/types"
)

// Query_GetTable 任何状态的桌子都可以查询
func (g *GuessCoin) Query_GetTable(in *gty.ReqTableID) (types.Message, error) {
	table, err := readTable(g.GetStateDB(), in.ID)
	if err != nil {
		return nil, err
	}
	return &gty.ReplyTable{Table: table}, nil
}

// Query_ListOpenTables 还在下注阶段的桌子
func (g *GuessCoin) Query_ListOpenTables(in *gty.ReqNil) (types.Message, error) {
	tables, err := listOpenTables(g.GetStateDB())
	if err != nil {
		return nil, err
	}
	return &gty.ReplyTableList{Tables: tables}, nil
}

// Query_GetDistribution 结算记录
func (g *GuessCoin) Query_GetDistribution(in *gty.ReqTableID) (types.Message, error) {
	record, err := readDistribution(g.GetStateDB(), in.ID)
	if err != nil {
		return nil, err
	}
	return &gty.ReplyDistribution{Record: record}, nil
}
