// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 猜硬币合约: 庄家提交秘密数的承诺并抵押保证金, 玩家猜秘密数的奇偶,
// 到期后庄家公开秘密数结算, 超时不公开则判庄家违约
package executor

import (
	"sync"

	"github.com/33cn/guesscoin/common/address"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/metrics"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/system/dapp"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var glog = log.New("module", "execs.guesscoin")

var (
	confMu  sync.RWMutex
	conf    = gty.DefaultParams()
	emitter = NewLogEmitter(metrics.DefaultRegistry)
	regOnce sync.Once
)

// Init 读取合约配置并注册驱动, 可以多次调用更新配置
func Init(name string, cfg *types.Config) error {
	if cfg != nil && cfg.GuessCoin != nil {
		p, err := gty.NewParams(cfg.GuessCoin)
		if err != nil {
			glog.Error("Init", "name", name, "err", err)
			return err
		}
		SetParams(p)
	}
	regOnce.Do(func() {
		dapp.Register(GetName(), newGuessCoin)
	})
	return nil
}

// SetParams 替换合约参数
func SetParams(p *gty.Params) {
	confMu.Lock()
	defer confMu.Unlock()
	conf = p
}

// SetEmitter 替换审计事件的输出
func SetEmitter(e Emitter) {
	confMu.Lock()
	defer confMu.Unlock()
	emitter = e
}

func currentConf() (*gty.Params, Emitter) {
	confMu.RLock()
	defer confMu.RUnlock()
	return conf, emitter
}

// GetName 执行器名
func GetName() string {
	return newGuessCoin().GetName()
}

// GuessCoin 执行器驱动
type GuessCoin struct {
	dapp.DriverBase
	params  *gty.Params
	emitter Emitter
	// 本交易的结算记录, 提交之后才输出
	pending []*gty.DistributionRecord
}

func newGuessCoin() dapp.Driver {
	g := &GuessCoin{}
	g.params, g.emitter = currentConf()
	g.SetChild(g)
	g.SetExecutorType(gty.NewType())
	return g
}

// GetDriverName 驱动名
func (g *GuessCoin) GetDriverName() string {
	return gty.GuessCoinX
}

// CheckTx 检查发起地址
func (g *GuessCoin) CheckTx(tx *types.Transaction, index int) error {
	if err := g.DriverBase.CheckTx(tx, index); err != nil {
		return err
	}
	if err := address.CheckAddress(tx.From); err != nil {
		return errors.Wrapf(gty.ErrInvalidArgument, "from %s: %v", tx.From, err)
	}
	if tx.From == g.GetExecAddress() {
		return errors.Wrap(gty.ErrInvalidArgument, "from is the exec address")
	}
	return nil
}

func (g *GuessCoin) addSettled(record *gty.DistributionRecord) {
	g.pending = append(g.pending, record)
}

// ExecCommitted 交易写入状态之后输出审计事件
func (g *GuessCoin) ExecCommitted() {
	pending := g.pending
	g.pending = nil
	if g.emitter == nil {
		return
	}
	for _, record := range pending {
		g.emitter.Emit(record)
	}
}
