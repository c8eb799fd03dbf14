// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/types"
)

// Exec_Create 开桌
func (g *GuessCoin) Exec_Create(payload *gty.TableCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(g, tx, index)
	return action.TableCreate(payload)
}

// Exec_Join 下注
func (g *GuessCoin) Exec_Join(payload *gty.TableJoin, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(g, tx, index)
	return action.TableJoin(payload)
}

// Exec_Reveal 开奖
func (g *GuessCoin) Exec_Reveal(payload *gty.TableReveal, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(g, tx, index)
	return action.TableReveal(payload)
}

// Exec_Forfeit 判庄家违约
func (g *GuessCoin) Exec_Forfeit(payload *gty.TableForfeit, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(g, tx, index)
	return action.TableForfeit(payload)
}
