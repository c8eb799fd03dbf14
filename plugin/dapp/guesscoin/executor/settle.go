// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/shopspring/decimal"
)

/*
结算只计算分配, 不做转账. 资金守恒:

	sum(player paid) + banker paid + system + deployer == collateral + sum(stakes)

正常开奖时庄家的净收益 bankerNet = 输家下注 - 赢家下注, 决定庄家结果:

	loss   bankerNet < 0   庄家拿回剩余的保证金
	push   bankerNet == 0  赢家收益再扣 BankerCompensation 补偿给庄家
	profit bankerNet > 0   庄家利润同样按比例抽成
*/

// regime 庄家结果, 决定赢家的收益比例和庄家的结算方式
type regime interface {
	kind() int32
	winFraction(p *gty.Params) decimal.Decimal
	compensation(p *gty.Params) decimal.Decimal
	// pool 为保证金加上输家下注再减去赢家下注
	resolveBanker(pool, collateral int64, p *gty.Params) (bankerPaid, deployer, system int64)
}

type lossRegime struct{}

func (lossRegime) kind() int32 { return gty.RegimeLoss }

func (lossRegime) winFraction(p *gty.Params) decimal.Decimal { return p.WinFraction(false) }

func (lossRegime) compensation(p *gty.Params) decimal.Decimal { return decimal.Zero }

func (lossRegime) resolveBanker(pool, collateral int64, p *gty.Params) (int64, int64, int64) {
	if pool > 0 {
		return pool, 0, 0
	}
	return 0, 0, 0
}

type pushRegime struct{}

func (pushRegime) kind() int32 { return gty.RegimePush }

func (pushRegime) winFraction(p *gty.Params) decimal.Decimal { return p.WinFraction(true) }

func (pushRegime) compensation(p *gty.Params) decimal.Decimal { return p.BankerCompensation }

// 补偿在遍历玩家时单独累加
func (pushRegime) resolveBanker(pool, collateral int64, p *gty.Params) (int64, int64, int64) {
	return collateral, 0, 0
}

type profitRegime struct{}

func (profitRegime) kind() int32 { return gty.RegimeProfit }

func (profitRegime) winFraction(p *gty.Params) decimal.Decimal { return p.WinFraction(false) }

func (profitRegime) compensation(p *gty.Params) decimal.Decimal { return decimal.Zero }

func (profitRegime) resolveBanker(pool, collateral int64, p *gty.Params) (int64, int64, int64) {
	profit := pool - collateral
	real := floorMul(profit, p.WinFraction(false))
	deployer := floorMul(profit, p.DeployerFee)
	return collateral + real, deployer, profit - real - deployer
}

func selectRegime(bankerNet int64) regime {
	switch {
	case bankerNet < 0:
		return lossRegime{}
	case bankerNet == 0:
		return pushRegime{}
	default:
		return profitRegime{}
	}
}

// floorMul floor(amount * f)
func floorMul(amount int64, f decimal.Decimal) int64 {
	return decimal.New(amount, 0).Mul(f).Floor().IntPart()
}

// Settle 开奖结算, table 不会被修改
func Settle(table *gty.Table, secret int64, p *gty.Params) *gty.DistributionRecord {
	parity := Parity(secret)
	record := newRecord(table, gty.DistKindReveal)
	record.Secret = secret
	record.Parity = parity
	if len(table.Players) == 0 {
		record.BankerPaid = table.Collateral
		return record
	}

	var bankerNet int64
	for _, player := range table.Players {
		if player.Guess == parity {
			bankerNet -= player.Staked
		} else {
			bankerNet += player.Staked
		}
	}
	reg := selectRegime(bankerNet)
	record.Regime = reg.kind()
	winFraction := reg.winFraction(p)
	compFraction := reg.compensation(p)

	pool := table.Collateral
	for _, player := range table.Players {
		net := &gty.PlayerNet{Addr: player.Addr, Guess: player.Guess, Staked: player.Staked}
		record.Players = append(record.Players, net)
		if player.Guess != parity {
			pool += player.Staked
			net.Net = -player.Staked
			continue
		}
		payout := floorMul(player.Staked, winFraction)
		deployer := floorMul(player.Staked, p.DeployerFee)
		comp := floorMul(player.Staked, compFraction)
		record.DeployerFee += deployer
		record.BankerCompensation += comp
		record.SystemFee += player.Staked - payout - deployer - comp
		pool -= player.Staked
		net.Paid = player.Staked + payout
		net.Net = payout
	}

	bankerPaid, deployer, system := reg.resolveBanker(pool, table.Collateral, p)
	record.BankerPaid = bankerPaid + record.BankerCompensation
	record.DeployerFee += deployer
	record.SystemFee += system
	record.BankerNet = record.BankerPaid - table.Collateral
	return record
}

// SettleForfeit 庄家违约, 所有玩家都按赢家结算. 下注总额超过保证金时, 每个玩家
// 按下注比例分得保证金, 没有被匹配的保证金退还庄家
func SettleForfeit(table *gty.Table, p *gty.Params) *gty.DistributionRecord {
	record := newRecord(table, gty.DistKindForfeit)
	total := table.TotalStaked()
	winFraction := p.WinFraction(false)

	var matched int64
	for _, player := range table.Players {
		share := matchedShare(player.Staked, total, table.Collateral)
		matched += share
		payout := floorMul(share, winFraction)
		deployer := floorMul(share, p.DeployerFee)
		record.DeployerFee += deployer
		record.SystemFee += share - payout - deployer
		record.Players = append(record.Players, &gty.PlayerNet{
			Addr:   player.Addr,
			Guess:  player.Guess,
			Staked: player.Staked,
			Paid:   player.Staked + payout,
			Net:    payout,
		})
	}
	record.BankerPaid = table.Collateral - matched
	record.BankerNet = -matched
	return record
}

// matchedShare 下注对应的保证金份额
func matchedShare(stake, total, collateral int64) int64 {
	if total <= collateral {
		return stake
	}
	a := decimal.New(stake, 0).Mul(decimal.New(collateral, 0))
	b := decimal.New(total, 0)
	q := a.Div(b).Floor()
	// Div 只保留有限位小数, 进位时修正
	if q.Mul(b).GreaterThan(a) {
		q = q.Sub(decimal.New(1, 0))
	}
	return q.IntPart()
}

func newRecord(table *gty.Table, kind int32) *gty.DistributionRecord {
	return &gty.DistributionRecord{
		TableID:    table.ID,
		Kind:       kind,
		Regime:     gty.RegimeNone,
		Banker:     table.Banker,
		Collateral: table.Collateral,
	}
}
