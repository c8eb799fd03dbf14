// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"

	"github.com/33cn/guesscoin/account"
	"github.com/33cn/guesscoin/common"
	dbm "github.com/33cn/guesscoin/common/db"
	"github.com/33cn/guesscoin/metrics"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/system/dapp"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

// Action 一个交易的执行环境. 交易的 Amount 在调用之前已经转到合约地址
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	amount       int64
	height       int64
	execaddr     string
	index        int
	params       *gty.Params
	settled      func(*gty.DistributionRecord)
}

// NewAction new
func NewAction(g *GuessCoin, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: g.GetCoinsAccount(),
		db:           g.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From,
		amount:       tx.Amount,
		height:       g.GetHeight(),
		execaddr:     dapp.ExecAddress(tx.Execer),
		index:        index,
		params:       g.params,
		settled:      g.addSettled,
	}
}

func (action *Action) receiptLog(ty int32, table *gty.Table, amount int64, guess int32) *types.ReceiptLog {
	r := &gty.ReceiptTable{
		TableID: table.ID,
		Status:  table.Status,
		Addr:    action.fromaddr,
		Height:  action.height,
		Amount:  amount,
		Guess:   guess,
	}
	return &types.ReceiptLog{Ty: ty, Log: types.Encode(r)}
}

// TableCreate 开桌, 保证金是交易的 Amount
func (action *Action) TableCreate(create *gty.TableCreate) (*types.Receipt, error) {
	collateral := action.amount
	if collateral <= 0 {
		glog.Error("TableCreate", "addr", action.fromaddr, "collateral", collateral, "err", gty.ErrInvalidArgument)
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "collateral %d", collateral)
	}
	commitment, err := NormalizeCommitment(create.Commitment)
	if err != nil {
		glog.Error("TableCreate", "addr", action.fromaddr, "commitment", create.Commitment, "err", err)
		return nil, err
	}
	if create.RoundsUntilReveal < 0 || create.RoundsUntilReveal > math.MaxInt64-action.height {
		glog.Error("TableCreate", "addr", action.fromaddr, "rounds", create.RoundsUntilReveal, "err", gty.ErrInvalidArgument)
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "roundsUntilReveal %d", create.RoundsUntilReveal)
	}
	reg := newRegistry(action.db)
	if action.params.MaxOpenTables > 0 {
		count, err := reg.openCount()
		if err != nil {
			return nil, err
		}
		if count >= action.params.MaxOpenTables {
			glog.Error("TableCreate", "addr", action.fromaddr, "open", count, "err", gty.ErrCapacityExceeded)
			return nil, errors.Wrapf(gty.ErrCapacityExceeded, "%d tables open", count)
		}
	}

	id, err := reg.nextID()
	if err != nil {
		return nil, err
	}
	table := &gty.Table{
		ID:             id,
		Banker:         action.fromaddr,
		Commitment:     commitment,
		Collateral:     collateral,
		RevealDeadline: action.height + create.RoundsUntilReveal,
		Status:         gty.TableStatusOpen,
		CreateHeight:   action.height,
		CreateTxHash:   common.ToHex(action.txhash),
	}
	if err := reg.saveTable(table); err != nil {
		return nil, err
	}
	if err := reg.addOpen(id); err != nil {
		return nil, err
	}
	metrics.Counter(MetricTableCreated).Inc(1)
	glog.Debug("TableCreate", "id", id, "banker", table.Banker, "collateral", collateral, "deadline", table.RevealDeadline)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   reg.kv,
		Logs: []*types.ReceiptLog{action.receiptLog(gty.TyLogGuessCoinCreate, table, collateral, 0)},
	}, nil
}

// TableJoin 下注, 金额是交易的 Amount
func (action *Action) TableJoin(join *gty.TableJoin) (*types.Receipt, error) {
	reg := newRegistry(action.db)
	table, err := reg.table(join.TableID)
	if err != nil {
		glog.Error("TableJoin", "addr", action.fromaddr, "id", join.TableID, "err", err)
		return nil, err
	}
	if !table.IsOpen() {
		glog.Error("TableJoin", "addr", action.fromaddr, "id", table.ID, "status", table.Status)
		return nil, errors.Wrapf(gty.ErrInvalidState, "table %d is %s", table.ID, gty.StatusString(table.Status))
	}
	if join.Guess != gty.GuessFront && join.Guess != gty.GuessBack {
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "guess %d", join.Guess)
	}
	if action.amount < action.params.MinWager {
		glog.Error("TableJoin", "addr", action.fromaddr, "id", table.ID, "wager", action.amount, "min", action.params.MinWager)
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "wager %d less than %d", action.amount, action.params.MinWager)
	}
	if action.height >= table.RevealDeadline-action.params.JoinMargin {
		glog.Error("TableJoin", "addr", action.fromaddr, "id", table.ID, "height", action.height, "deadline", table.RevealDeadline)
		return nil, errors.Wrapf(gty.ErrInvalidState, "join closed at height %d", table.RevealDeadline-action.params.JoinMargin)
	}
	exposure := table.Exposure(join.Guess, action.amount)
	if exposure > table.Collateral {
		glog.Error("TableJoin", "addr", action.fromaddr, "id", table.ID, "exposure", exposure, "collateral", table.Collateral)
		return nil, errors.Wrapf(gty.ErrCapacityExceeded, "exposure %d collateral %d", exposure, table.Collateral)
	}

	table.Players = append(table.Players, &gty.Player{
		Addr:   action.fromaddr,
		Staked: action.amount,
		Guess:  join.Guess,
	})
	if err := reg.saveTable(table); err != nil {
		return nil, err
	}
	metrics.Counter(MetricTableJoined).Inc(1)
	glog.Debug("TableJoin", "id", table.ID, "addr", action.fromaddr, "guess", gty.GuessString(join.Guess), "wager", action.amount)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   reg.kv,
		Logs: []*types.ReceiptLog{action.receiptLog(gty.TyLogGuessCoinJoin, table, action.amount, join.Guess)},
	}, nil
}

// TableReveal 公开秘密数并结算
func (action *Action) TableReveal(reveal *gty.TableReveal) (*types.Receipt, error) {
	if action.amount != 0 {
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "reveal with amount %d", action.amount)
	}
	reg := newRegistry(action.db)
	table, err := reg.table(reveal.TableID)
	if err != nil {
		glog.Error("TableReveal", "addr", action.fromaddr, "id", reveal.TableID, "err", err)
		return nil, err
	}
	if !table.IsOpen() {
		glog.Error("TableReveal", "addr", action.fromaddr, "id", table.ID, "status", table.Status)
		return nil, errors.Wrapf(gty.ErrInvalidState, "table %d is %s", table.ID, gty.StatusString(table.Status))
	}
	if action.height < table.RevealDeadline {
		glog.Error("TableReveal", "addr", action.fromaddr, "id", table.ID, "height", action.height, "deadline", table.RevealDeadline)
		return nil, errors.Wrapf(gty.ErrInvalidState, "reveal opens at height %d", table.RevealDeadline)
	}
	if !VerifyCommitment(reveal.Secret, table.Commitment) {
		metrics.Counter(MetricRevealMismatch).Inc(1)
		glog.Error("TableReveal", "addr", action.fromaddr, "id", table.ID, "err", gty.ErrCommitmentMismatch)
		return nil, errors.Wrapf(gty.ErrCommitmentMismatch, "table %d", table.ID)
	}
	record := Settle(table, reveal.Secret, action.params)
	table.Revealed = true
	table.RevealedSecret = reveal.Secret
	table.RevealedParity = record.Parity
	return action.settle(reg, table, record, gty.TableStatusSettled, gty.TyLogGuessCoinReveal)
}

// TableForfeit 庄家超过宽限期没有公开, 按违约结算
func (action *Action) TableForfeit(forfeit *gty.TableForfeit) (*types.Receipt, error) {
	if action.amount != 0 {
		return nil, errors.Wrapf(gty.ErrInvalidArgument, "forfeit with amount %d", action.amount)
	}
	reg := newRegistry(action.db)
	table, err := reg.table(forfeit.TableID)
	if err != nil {
		glog.Error("TableForfeit", "addr", action.fromaddr, "id", forfeit.TableID, "err", err)
		return nil, err
	}
	if !table.IsOpen() {
		glog.Error("TableForfeit", "addr", action.fromaddr, "id", table.ID, "status", table.Status)
		return nil, errors.Wrapf(gty.ErrInvalidState, "table %d is %s", table.ID, gty.StatusString(table.Status))
	}
	if action.height < table.RevealDeadline || action.height-table.RevealDeadline < action.params.GracePeriod {
		glog.Error("TableForfeit", "addr", action.fromaddr, "id", table.ID, "height", action.height,
			"deadline", table.RevealDeadline, "grace", action.params.GracePeriod)
		return nil, errors.Wrapf(gty.ErrInvalidState, "grace period of table %d not over", table.ID)
	}
	record := SettleForfeit(table, action.params)
	return action.settle(reg, table, record, gty.TableStatusForfeited, gty.TyLogGuessCoinForfeit)
}

// settle 先把桌子改为结束状态, 再按 record 从合约地址转账
func (action *Action) settle(reg *registry, table *gty.Table, record *gty.DistributionRecord, status int32, logTy int32) (*types.Receipt, error) {
	if total := table.Collateral + table.TotalStaked(); record.TotalPaid() != total {
		glog.Error("settle", "id", table.ID, "paid", record.TotalPaid(), "total", total)
		return nil, errors.Wrapf(types.ErrAmount, "table %d pays %d of %d", table.ID, record.TotalPaid(), total)
	}
	record.Height = action.height
	for i, p := range record.Players {
		table.Players[i].Payout = p.Paid
	}
	table.Status = status
	table.SettleHeight = action.height
	if err := reg.saveTable(table); err != nil {
		return nil, err
	}
	if err := reg.saveDistribution(record); err != nil {
		return nil, err
	}
	if err := reg.removeOpen(table.ID); err != nil {
		return nil, err
	}

	kv := reg.kv
	var logs []*types.ReceiptLog
	pay := func(to string, amount int64) error {
		if amount <= 0 {
			return nil
		}
		receipt, err := action.coinsAccount.Transfer(action.execaddr, to, amount)
		if err != nil {
			glog.Error("settle.Transfer", "id", table.ID, "execaddr", action.execaddr, "to", to, "amount", amount, "err", err)
			return err
		}
		kv = append(kv, receipt.KV...)
		logs = append(logs, receipt.Logs...)
		return nil
	}
	for _, p := range record.Players {
		if err := pay(p.Addr, p.Paid); err != nil {
			return nil, err
		}
	}
	if err := pay(table.Banker, record.BankerPaid); err != nil {
		return nil, err
	}
	if err := pay(action.params.DeployerAddr, record.DeployerFee); err != nil {
		return nil, err
	}
	if err := pay(action.params.SystemAddr, record.SystemFee); err != nil {
		return nil, err
	}

	logs = append(logs, action.receiptLog(logTy, table, record.TotalPaid(), record.Parity))
	logs = append(logs, &types.ReceiptLog{Ty: gty.TyLogGuessCoinDistribution, Log: types.Encode(record)})
	if action.settled != nil {
		action.settled(record)
	}
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}
