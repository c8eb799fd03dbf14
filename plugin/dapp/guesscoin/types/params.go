// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/guesscoin/common/address"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Params 合约参数, 所有比例都是 [0, 1) 之间的小数
type Params struct {
	SystemAddr   string
	DeployerAddr string
	// 赢家收益中系统的抽成
	SystemFee decimal.Decimal
	// 赢家收益中部署者的抽成
	DeployerFee decimal.Decimal
	// 平局时赢家收益中补偿给庄家的比例
	BankerCompensation decimal.Decimal
	// 同时开放的桌子上限, 0 不限制
	MaxOpenTables int64
	MinWager      int64
	// 公开期限之后, 再过多少个区块可以判庄家违约
	GracePeriod int64
	// 公开期限前多少个区块停止下注
	JoinMargin int64
}

// DefaultParams 默认参数
func DefaultParams() *Params {
	p, err := NewParams(types.DefaultConfig().GuessCoin)
	if err != nil {
		panic(err)
	}
	return p
}

// NewParams 从配置文件生成参数
func NewParams(cfg *types.GuessCoin) (*Params, error) {
	if cfg == nil {
		return nil, errors.Wrap(types.ErrConfigNotFound, GuessCoinX)
	}
	systemFee, err := decimal.NewFromString(cfg.SystemFee)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "systemFee %q", cfg.SystemFee)
	}
	deployerFee, err := decimal.NewFromString(cfg.DeployerFee)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "deployerFee %q", cfg.DeployerFee)
	}
	compensation, err := decimal.NewFromString(cfg.BankerCompensation)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "bankerCompensation %q", cfg.BankerCompensation)
	}
	p := &Params{
		SystemAddr:         cfg.SystemAddr,
		DeployerAddr:       cfg.DeployerAddr,
		SystemFee:          systemFee,
		DeployerFee:        deployerFee,
		BankerCompensation: compensation,
		MaxOpenTables:      cfg.MaxOpenTables,
		MinWager:           cfg.MinWager,
		GracePeriod:        cfg.GracePeriod,
		JoinMargin:         cfg.JoinMargin,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate 检查参数
func (p *Params) Validate() error {
	if err := address.CheckAddress(p.SystemAddr); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "systemAddr %s: %v", p.SystemAddr, err)
	}
	if err := address.CheckAddress(p.DeployerAddr); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "deployerAddr %s: %v", p.DeployerAddr, err)
	}
	for name, f := range map[string]decimal.Decimal{
		"systemFee":          p.SystemFee,
		"deployerFee":        p.DeployerFee,
		"bankerCompensation": p.BankerCompensation,
	} {
		if f.IsNegative() {
			return errors.Wrapf(ErrInvalidArgument, "%s %s < 0", name, f)
		}
	}
	if p.SystemFee.Add(p.DeployerFee).Add(p.BankerCompensation).GreaterThanOrEqual(decimal.New(1, 0)) {
		return errors.Wrap(ErrInvalidArgument, "systemFee + deployerFee + bankerCompensation must be < 1")
	}
	if p.MinWager < 1 {
		return errors.Wrapf(ErrInvalidArgument, "minWager %d", p.MinWager)
	}
	if p.GracePeriod < 1 {
		return errors.Wrapf(ErrInvalidArgument, "gracePeriod %d", p.GracePeriod)
	}
	if p.JoinMargin < 0 {
		return errors.Wrapf(ErrInvalidArgument, "joinMargin %d", p.JoinMargin)
	}
	if p.MaxOpenTables < 0 {
		return errors.Wrapf(ErrInvalidArgument, "maxOpenTables %d", p.MaxOpenTables)
	}
	return nil
}

// WinFraction 赢家拿到的收益比例, push 时还要扣掉给庄家的补偿
func (p *Params) WinFraction(push bool) decimal.Decimal {
	f := decimal.New(1, 0).Sub(p.SystemFee).Sub(p.DeployerFee)
	if push {
		f = f.Sub(p.BankerCompensation)
	}
	return f
}
