// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 串行执行交易, 一个交易的所有修改要么全部生效要么全部回滚
package executor

import (
	"sync"

	"github.com/33cn/guesscoin/account"
	"github.com/33cn/guesscoin/blockchain"
	dbm "github.com/33cn/guesscoin/common/db"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/system/dapp"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

// Executor 交易执行器
type Executor struct {
	mu      sync.Mutex
	statedb *StateDB
	chain   *blockchain.BlockChain
}

// New new
func New(db dbm.DB, chain *blockchain.BlockChain) *Executor {
	return &Executor{
		statedb: NewStateDB(db),
		chain:   chain,
	}
}

// ExecTx 执行一个交易. tx.Amount 先从 From 转到执行器地址, 和合约调用在同一个事务里
func (exec *Executor) ExecTx(tx *types.Transaction) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()

	if tx.Amount < 0 {
		return nil, errors.Wrapf(types.ErrAmount, "amount %d", tx.Amount)
	}
	driver, err := dapp.LoadDriver(tx.Execer)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(exec.statedb)
	driver.SetEnv(exec.chain.Height(), exec.chain.BlockTime())
	if err := driver.CheckTx(tx, 0); err != nil {
		return nil, err
	}

	exec.statedb.Begin()
	receipt, err := exec.execTx(driver, tx)
	if err != nil {
		exec.statedb.Rollback()
		elog.Debug("ExecTx rollback", "execer", tx.Execer, "from", tx.From, "err", err)
		return nil, err
	}
	if err := exec.statedb.Commit(); err != nil {
		elog.Error("ExecTx commit", "execer", tx.Execer, "err", err)
		return nil, err
	}
	if c, ok := driver.(dapp.Committer); ok {
		c.ExecCommitted()
	}
	return receipt, nil
}

func (exec *Executor) execTx(driver dapp.Driver, tx *types.Transaction) (*types.Receipt, error) {
	var payment *types.Receipt
	if tx.Amount > 0 {
		var err error
		payment, err = driver.GetCoinsAccount().Transfer(tx.From, dapp.ExecAddress(tx.Execer), tx.Amount)
		if err != nil {
			return nil, err
		}
	}
	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	if payment != nil {
		receipt = &types.Receipt{
			Ty:   receipt.Ty,
			KV:   append(payment.KV, receipt.KV...),
			Logs: append(payment.Logs, receipt.Logs...),
		}
	}
	return receipt, nil
}

// Query 只读查询
func (exec *Executor) Query(execer, funcName string, params []byte) (types.Message, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()

	driver, err := dapp.LoadDriver(execer)
	if err != nil {
		return nil, err
	}
	driver.SetStateDB(exec.statedb)
	driver.SetEnv(exec.chain.Height(), exec.chain.BlockTime())
	return driver.Query(funcName, params)
}

// Deposit 本地链充值
func (exec *Executor) Deposit(addr string, amount int64) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()

	exec.statedb.Begin()
	receipt, err := account.NewCoinsAccount(exec.statedb).Deposit(addr, amount)
	if err != nil {
		exec.statedb.Rollback()
		return nil, err
	}
	if err := exec.statedb.Commit(); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetBalance 查询原生币余额
func (exec *Executor) GetBalance(addr string) (*types.Account, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	return account.NewCoinsAccount(exec.statedb).LoadAccount(addr)
}

// Height 当前区块高度
func (exec *Executor) Height() int64 {
	return exec.chain.Height()
}
