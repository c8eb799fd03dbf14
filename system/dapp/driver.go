// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的基础实现, 具体的合约嵌入 DriverBase
package dapp

import (
	"fmt"
	"reflect"

	"github.com/33cn/guesscoin/account"
	dbm "github.com/33cn/guesscoin/common/db"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var blog = log.New("module", "execs.base")

// ExecutorType 合约的类型信息, 负责解析交易和查询参数
type ExecutorType interface {
	// DecodePayloadValue 返回 action 的名字和参数
	DecodePayloadValue(tx *types.Transaction) (string, reflect.Value, error)
	// DecodeQueryParam 返回查询函数的参数
	DecodeQueryParam(funcName string, params []byte) (reflect.Value, error)
}

// Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	GetCoinsAccount() *account.DB
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	SetEnv(height, blocktime int64)
	GetHeight() int64
	GetBlockTime() int64
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	Query(funcName string, params []byte) (types.Message, error)
	GetFuncMap() map[string]reflect.Method
	GetExecutorType() ExecutorType
}

// Committer 交易写入状态之后回调, 回滚的交易不会调用
type Committer interface {
	ExecCommitted()
}

// DriverBase 驱动的公共部分
type DriverBase struct {
	statedb      dbm.KV
	coinsaccount *account.DB
	height       int64
	blocktime    int64
	child        Driver
	childValue   reflect.Value
	funcmap      map[string]reflect.Method
	ety          ExecutorType
}

// SetChild 设置具体的合约, Exec_ 和 Query_ 方法从 child 上查找
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
	d.funcmap = ListMethod(e)
}

// SetExecutorType set
func (d *DriverBase) SetExecutorType(e ExecutorType) {
	d.ety = e
}

// GetExecutorType get
func (d *DriverBase) GetExecutorType() ExecutorType {
	return d.ety
}

// GetFuncMap Exec_ 和 Query_ 开头的方法
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	return d.funcmap
}

// SetEnv 设置当前区块的信息
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// CheckTx 默认只检查 payload 不为空
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if len(tx.Payload) == 0 {
		return types.ErrEmptyTx
	}
	return nil
}

// Exec 解析交易后调用子类的 Exec_<ActionName>
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call exec error", "tx.exec", tx.Execer, "info", r)
			err = errors.Wrap(types.ErrActionNotSupport, fmt.Sprint(r))
			receipt = nil
		}
	}()
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcname := "Exec_" + name
	method, ok := d.funcmap[funcname]
	if !ok {
		return nil, errors.Wrap(types.ErrActionNotSupport, funcname)
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !isOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	r1 := valueret[0].Interface()
	if r1 != nil {
		r, ok := r1.(*types.Receipt)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		receipt = r
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		e, ok := r2.(error)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return nil, e
	}
	return receipt, nil
}

// Query 调用子类的 Query_<funcName>
func (d *DriverBase) Query(funcName string, params []byte) (msg types.Message, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	method, ok := d.funcmap["Query_"+funcName]
	if !ok {
		blog.Debug("Query", "funcname", funcName, "err", types.ErrQueryNotSupport)
		return nil, errors.Wrap(types.ErrQueryNotSupport, funcName)
	}
	arg, err := d.ety.DecodeQueryParam(funcName, params)
	if err != nil {
		return nil, err
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, arg})
	if !isOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	if r2 := valueret[1].Interface(); r2 != nil {
		e, ok := r2.(error)
		if !ok {
			return nil, types.ErrMethodReturnType
		}
		return nil, e
	}
	r1 := valueret[0].Interface()
	if r1 == nil {
		return nil, nil
	}
	msg, ok = r1.(types.Message)
	if !ok {
		return nil, types.ErrMethodReturnType
	}
	return msg, nil
}

// SetStateDB 执行器在每个交易之前设置
func (d *DriverBase) SetStateDB(db dbm.KV) {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(db)
	}
	d.statedb = db
	d.coinsaccount.SetDB(db)
}

// GetStateDB get
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// GetHeight 当前区块高度
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime 当前区块时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

// GetName 执行器名, 等于驱动名
func (d *DriverBase) GetName() string {
	return d.child.GetDriverName()
}

// GetCoinsAccount 本链原生币账户
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(d.statedb)
	}
	return d.coinsaccount
}

// GetExecAddress 当前执行器地址
func (d *DriverBase) GetExecAddress() string {
	return ExecAddress(d.GetName())
}
