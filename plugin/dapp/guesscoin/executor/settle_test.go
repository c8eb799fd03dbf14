// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math/rand"
	"testing"

	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(collateral int64, players ...*gty.Player) *gty.Table {
	return &gty.Table{
		ID:         1,
		Banker:     "banker",
		Collateral: collateral,
		Status:     gty.TableStatusOpen,
		Players:    players,
	}
}

func front(addr string, stake int64) *gty.Player {
	return &gty.Player{Addr: addr, Staked: stake, Guess: gty.GuessFront}
}

func back(addr string, stake int64) *gty.Player {
	return &gty.Player{Addr: addr, Staked: stake, Guess: gty.GuessBack}
}

func assertConserved(t *testing.T, table *gty.Table, record *gty.DistributionRecord) {
	t.Helper()
	assert.Equal(t, table.Collateral+table.TotalStaked(), record.TotalPaid())
	assert.True(t, record.BankerPaid >= 0)
	assert.True(t, record.SystemFee >= 0)
	assert.True(t, record.DeployerFee >= 0)
	for _, p := range record.Players {
		assert.True(t, p.Paid >= 0)
		assert.Equal(t, p.Paid-p.Staked, p.Net)
	}
}

func TestSettlePush(t *testing.T) {
	table := newTestTable(1000, front("a", 100), back("b", 100))
	record := Settle(table, 7, gty.DefaultParams())
	assertConserved(t, table, record)

	assert.Equal(t, int32(gty.RegimePush), record.Regime)
	assert.Equal(t, int32(gty.GuessFront), record.Parity)
	require.Len(t, record.Players, 2)
	assert.Equal(t, int64(189), record.Players[0].Paid)
	assert.Equal(t, int64(89), record.Players[0].Net)
	assert.Equal(t, int64(0), record.Players[1].Paid)
	assert.Equal(t, int64(-100), record.Players[1].Net)
	assert.Equal(t, int64(10), record.BankerCompensation)
	assert.Equal(t, int64(1010), record.BankerPaid)
	assert.Equal(t, int64(10), record.BankerNet)
	assert.Equal(t, int64(1), record.SystemFee)
	assert.Equal(t, int64(0), record.DeployerFee)
	// table is not modified
	assert.Equal(t, int64(0), table.Players[0].Payout)
}

func TestSettleLoss(t *testing.T) {
	table := newTestTable(1000, front("a", 300), back("b", 100))
	record := Settle(table, 3, gty.DefaultParams())
	assertConserved(t, table, record)

	assert.Equal(t, int32(gty.RegimeLoss), record.Regime)
	assert.Equal(t, int64(597), record.Players[0].Paid)
	assert.Equal(t, int64(0), record.Players[1].Paid)
	assert.Equal(t, int64(800), record.BankerPaid)
	assert.Equal(t, int64(-200), record.BankerNet)
	assert.Equal(t, int64(3), record.SystemFee)
	assert.Equal(t, int64(0), record.BankerCompensation)
}

func TestSettleLossEmptiesCollateral(t *testing.T) {
	table := newTestTable(100, front("a", 100))
	record := Settle(table, 1, gty.DefaultParams())
	assertConserved(t, table, record)
	assert.Equal(t, int32(gty.RegimeLoss), record.Regime)
	assert.Equal(t, int64(199), record.Players[0].Paid)
	assert.Equal(t, int64(0), record.BankerPaid)
	assert.Equal(t, int64(-100), record.BankerNet)
}

func TestSettleProfit(t *testing.T) {
	table := newTestTable(1000, front("a", 300), back("b", 100))
	record := Settle(table, 4, gty.DefaultParams())
	assertConserved(t, table, record)

	assert.Equal(t, int32(gty.RegimeProfit), record.Regime)
	assert.Equal(t, int32(gty.GuessBack), record.Parity)
	assert.Equal(t, int64(0), record.Players[0].Paid)
	assert.Equal(t, int64(199), record.Players[1].Paid)
	assert.Equal(t, int64(1198), record.BankerPaid)
	assert.Equal(t, int64(198), record.BankerNet)
	assert.Equal(t, int64(3), record.SystemFee)
}

func TestSettleProfitWithDeployerFee(t *testing.T) {
	p := gty.DefaultParams()
	p.DeployerFee = decimal.New(2, -2)
	table := newTestTable(1000, front("a", 300), back("b", 100))
	record := Settle(table, 4, p)
	assertConserved(t, table, record)

	assert.Equal(t, int64(197), record.Players[1].Paid)
	assert.Equal(t, int64(1194), record.BankerPaid)
	assert.Equal(t, int64(6), record.DeployerFee)
	assert.Equal(t, int64(3), record.SystemFee)
}

func TestSettleEmpty(t *testing.T) {
	table := newTestTable(500)
	record := Settle(table, 10, gty.DefaultParams())
	assertConserved(t, table, record)
	assert.Equal(t, int32(gty.RegimeNone), record.Regime)
	assert.Empty(t, record.Players)
	assert.Equal(t, int64(500), record.BankerPaid)

	record = SettleForfeit(table, gty.DefaultParams())
	assertConserved(t, table, record)
	assert.Equal(t, int32(gty.DistKindForfeit), record.Kind)
	assert.Empty(t, record.Players)
	assert.Equal(t, int64(500), record.BankerPaid)
}

func TestSettleForfeit(t *testing.T) {
	table := newTestTable(1000, front("a", 300), back("b", 100))
	record := SettleForfeit(table, gty.DefaultParams())
	assertConserved(t, table, record)

	assert.Equal(t, int32(gty.RegimeNone), record.Regime)
	assert.Equal(t, int64(597), record.Players[0].Paid)
	assert.Equal(t, int64(199), record.Players[1].Paid)
	assert.Equal(t, int64(600), record.BankerPaid)
	assert.Equal(t, int64(-400), record.BankerNet)
	assert.Equal(t, int64(4), record.SystemFee)
	assert.Equal(t, int64(0), record.BankerCompensation)
}

func TestSettleForfeitProRata(t *testing.T) {
	table := newTestTable(100, front("a", 100), back("b", 100), front("c", 50))
	record := SettleForfeit(table, gty.DefaultParams())
	assertConserved(t, table, record)
	assert.Equal(t, int64(139), record.Players[0].Paid)
	assert.Equal(t, int64(139), record.Players[1].Paid)
	assert.Equal(t, int64(69), record.Players[2].Paid)
	assert.Equal(t, int64(0), record.BankerPaid)
	assert.Equal(t, int64(3), record.SystemFee)

	table = newTestTable(100, front("a", 70), back("b", 80), front("c", 10))
	record = SettleForfeit(table, gty.DefaultParams())
	assertConserved(t, table, record)
	assert.Equal(t, int64(112), record.Players[0].Paid)
	assert.Equal(t, int64(129), record.Players[1].Paid)
	assert.Equal(t, int64(15), record.Players[2].Paid)
	assert.Equal(t, int64(1), record.BankerPaid)
}

func TestMatchedShare(t *testing.T) {
	assert.Equal(t, int64(30), matchedShare(30, 90, 100))
	assert.Equal(t, int64(43), matchedShare(70, 160, 100))
	assert.Equal(t, int64(1), matchedShare(1, 3, 100))
	assert.Equal(t, int64(0), matchedShare(1, 3, 2))
	assert.Equal(t, int64(33), matchedShare(100, 300, 100))
	assert.Equal(t, int64(333333333333), matchedShare(1e12, 3e12, 1e12))
}

func TestSelectRegime(t *testing.T) {
	assert.Equal(t, int32(gty.RegimeLoss), selectRegime(-1).kind())
	assert.Equal(t, int32(gty.RegimePush), selectRegime(0).kind())
	assert.Equal(t, int32(gty.RegimeProfit), selectRegime(1).kind())
}

// 随机生成满足下注限制的桌子, 结算前后资金守恒
func TestSettleConservation(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	p := gty.DefaultParams()
	p.DeployerFee = decimal.New(3, -2)
	for i := 0; i < 500; i++ {
		table := newTestTable(rnd.Int63n(1e6) + 1)
		for j := rnd.Intn(20); j > 0; j-- {
			guess := int32(rnd.Intn(2))
			stake := rnd.Int63n(table.Collateral) + 1
			if table.Exposure(guess, stake) > table.Collateral {
				continue
			}
			table.Players = append(table.Players, &gty.Player{Addr: "p", Staked: stake, Guess: guess})
		}
		secret := rnd.Int63() - rnd.Int63()
		assertConserved(t, table, Settle(table, secret, p))
		assertConserved(t, table, SettleForfeit(table, p))
	}
}
