// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 链上资产账户操作

账户保存在状态数据库 mavl-<execer>-<symbol>-<addr> 下, 所有余额变化都生成
ReceiptAccountTransfer 日志
*/
package account

import (
	"fmt"
	"strings"

	dbm "github.com/33cn/guesscoin/common/db"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	symbol           string
}

// NewCoinsAccount 本链原生币账户
func NewCoinsAccount(db dbm.KV) *DB {
	accDB, _ := NewAccountDB("coins", types.CoinsSymbol, db)
	return accDB
}

// NewAccountDB 如果execer 和 symbol 中存在 "-", 那么创建失败
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	if strings.ContainsRune(execer, '-') || strings.ContainsRune(symbol, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	return &DB{
		db:               db,
		accountKeyPerfix: []byte(SymbolPrefix(execer, symbol)),
		execer:           execer,
		symbol:           symbol,
	}, nil
}

// SetDB 切换底层存储, 执行器在每个交易开始时设置
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 不存在的账户返回余额为0的账户
func (acc *DB) LoadAccount(addr string) (*types.Account, error) {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err == dbm.ErrNotFoundInDb {
		return &types.Account{Addr: addr}, nil
	}
	if err != nil {
		return nil, err
	}
	var acc1 types.Account
	if err := types.Decode(value, &acc1); err != nil {
		alog.Error("LoadAccount", "addr", addr, "err", err)
		return nil, err
	}
	return &acc1, nil
}

// CheckTransfer 只检查不修改
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom, err := acc.LoadAccount(from)
	if err != nil {
		return err
	}
	if accFrom.GetBalance()-amount < 0 {
		return errors.Wrapf(types.ErrNoBalance, "addr %s balance %d need %d", from, accFrom.GetBalance(), amount)
	}
	return nil
}

// Transfer from -> to
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom, err := acc.LoadAccount(from)
	if err != nil {
		return nil, err
	}
	accTo, err := acc.LoadAccount(to)
	if err != nil {
		return nil, err
	}
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance = accFrom.GetBalance() - amount
	accTo.Balance, err = safeAdd(accTo.GetBalance(), amount)
	if err != nil {
		return nil, err
	}

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	if err := acc.SaveAccount(accFrom); err != nil {
		return nil, err
	}
	if err := acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

// Deposit 本地链的充值, 凭空增加余额
func (acc *DB) Deposit(addr string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accTo, err := acc.LoadAccount(addr)
	if err != nil {
		return nil, err
	}
	copyto := *accTo
	accTo.Balance, err = safeAdd(accTo.GetBalance(), amount)
	if err != nil {
		return nil, err
	}
	receiptBalance := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	if err := acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(accTo),
		Logs: []*types.ReceiptLog{{Ty: types.TyLogDeposit, Log: types.Encode(receiptBalance)}},
	}, nil
}

func safeAdd(balance, amount int64) (int64, error) {
	if balance+amount < amount || balance+amount > types.MaxCoin {
		return balance, types.ErrAmount
	}
	return balance + amount, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo types.Message) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// SaveAccount 写入状态数据库
func (acc *DB) SaveAccount(acc1 *types.Account) error {
	for _, kv := range acc.GetKVSet(acc1) {
		if err := acc.db.Set(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// GetKVSet 账户对应的kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: types.Encode(acc1),
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

// SymbolPrefix mavl-<execer>-<symbol>-
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-", execer, symbol)
}
