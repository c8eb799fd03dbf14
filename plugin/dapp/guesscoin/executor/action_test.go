// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/33cn/guesscoin/blockchain"
	"github.com/33cn/guesscoin/common/address"
	dbm "github.com/33cn/guesscoin/common/db"
	chainexec "github.com/33cn/guesscoin/executor"
	"github.com/33cn/guesscoin/metrics"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/system/dapp"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const initBalance = 1000000

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) Emit(record *gty.DistributionRecord) {
	m.Called(record)
}

type GuessCoinTestSuite struct {
	suite.Suite
	exec    *chainexec.Executor
	chain   *blockchain.BlockChain
	emitter *mockEmitter
	params  *gty.Params
	banker  string
	alice   string
	bob     string
}

func (s *GuessCoinTestSuite) SetupTest() {
	db, err := dbm.NewGoMemDB("guesscoin", "", 0)
	s.Require().NoError(err)
	s.chain, err = blockchain.New(db)
	s.Require().NoError(err)
	s.exec = chainexec.New(db, s.chain)

	s.params = gty.DefaultParams()
	SetParams(s.params)
	s.emitter = &mockEmitter{}
	SetEmitter(s.emitter)
	s.Require().NoError(Init(gty.GuessCoinX, nil))

	s.banker = address.PubKeyToAddress([]byte("banker")).String()
	s.alice = address.PubKeyToAddress([]byte("alice")).String()
	s.bob = address.PubKeyToAddress([]byte("bob")).String()
	for _, addr := range []string{s.banker, s.alice, s.bob} {
		_, err := s.exec.Deposit(addr, initBalance)
		s.Require().NoError(err)
	}
}

func (s *GuessCoinTestSuite) TearDownTest() {
	SetParams(gty.DefaultParams())
	SetEmitter(NewLogEmitter(metrics.DefaultRegistry))
}

func (s *GuessCoinTestSuite) mineTo(height int64) {
	if n := height - s.chain.Height(); n > 0 {
		_, err := s.chain.Mine(n)
		s.Require().NoError(err)
	}
	s.Require().Equal(height, s.chain.Height())
}

func (s *GuessCoinTestSuite) balance(addr string) int64 {
	acc, err := s.exec.GetBalance(addr)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *GuessCoinTestSuite) execBalance() int64 {
	return s.balance(dapp.ExecAddress(gty.GuessCoinX))
}

func (s *GuessCoinTestSuite) create(collateral, secret, rounds int64) int64 {
	tx := gty.CreateRawTableCreateTx(s.banker, collateral, MakeCommitment(secret), rounds)
	receipt, err := s.exec.ExecTx(tx)
	s.Require().NoError(err)
	for _, l := range receipt.Logs {
		if l.Ty == gty.TyLogGuessCoinCreate {
			var r gty.ReceiptTable
			s.Require().NoError(types.Decode(l.Log, &r))
			return r.TableID
		}
	}
	s.FailNow("no create log")
	return 0
}

func (s *GuessCoinTestSuite) join(from string, id int64, guess int32, wager int64) error {
	_, err := s.exec.ExecTx(gty.CreateRawTableJoinTx(from, id, guess, wager))
	return err
}

func (s *GuessCoinTestSuite) reveal(from string, id, secret int64) (*types.Receipt, error) {
	return s.exec.ExecTx(gty.CreateRawTableRevealTx(from, id, secret))
}

func (s *GuessCoinTestSuite) forfeit(from string, id int64) (*types.Receipt, error) {
	return s.exec.ExecTx(gty.CreateRawTableForfeitTx(from, id))
}

func (s *GuessCoinTestSuite) table(id int64) *gty.Table {
	msg, err := s.exec.Query(gty.GuessCoinX, gty.FuncNameGetTable, types.Encode(&gty.ReqTableID{ID: id}))
	s.Require().NoError(err)
	return msg.(*gty.ReplyTable).Table
}

func (s *GuessCoinTestSuite) openTables() []*gty.Table {
	msg, err := s.exec.Query(gty.GuessCoinX, gty.FuncNameListOpenTables, nil)
	s.Require().NoError(err)
	return msg.(*gty.ReplyTableList).Tables
}

func (s *GuessCoinTestSuite) distribution(id int64) *gty.DistributionRecord {
	msg, err := s.exec.Query(gty.GuessCoinX, gty.FuncNameGetDistribution, types.Encode(&gty.ReqTableID{ID: id}))
	s.Require().NoError(err)
	return msg.(*gty.ReplyDistribution).Record
}

func (s *GuessCoinTestSuite) TestCreate() {
	s.mineTo(5)
	id := s.create(1000, 7, 20)
	s.Equal(int64(1), id)
	s.Equal(int64(initBalance-1000), s.balance(s.banker))
	s.Equal(int64(1000), s.execBalance())

	table := s.table(id)
	s.Equal(s.banker, table.Banker)
	s.Equal(int64(1000), table.Collateral)
	s.Equal(int64(25), table.RevealDeadline)
	s.Equal(MakeCommitment(7), table.Commitment)
	s.True(table.IsOpen())

	s.Equal(int64(2), s.create(500, 8, 10))
	open := s.openTables()
	s.Require().Len(open, 2)
	s.Equal(int64(1), open[0].ID)
	s.Equal(int64(2), open[1].ID)

	_, err := s.exec.Query(gty.GuessCoinX, gty.FuncNameGetTable, types.Encode(&gty.ReqTableID{ID: 3}))
	s.Equal(gty.ErrNotFound, errors.Cause(err))
	_, err = s.exec.Query(gty.GuessCoinX, gty.FuncNameGetDistribution, types.Encode(&gty.ReqTableID{ID: 1}))
	s.Equal(gty.ErrNotFound, errors.Cause(err))
}

func (s *GuessCoinTestSuite) TestCreateInvalid() {
	commitment := MakeCommitment(1)
	cases := []*types.Transaction{
		gty.CreateRawTableCreateTx(s.banker, 0, commitment, 10),
		gty.CreateRawTableCreateTx(s.banker, 100, "1234", 10),
		gty.CreateRawTableCreateTx(s.banker, 100, commitment, -1),
	}
	for _, tx := range cases {
		_, err := s.exec.ExecTx(tx)
		s.Equal(gty.ErrInvalidArgument, errors.Cause(err))
	}
	s.Equal(int64(initBalance), s.balance(s.banker))
	s.Equal(int64(0), s.execBalance())
	s.Empty(s.openTables())
}

func (s *GuessCoinTestSuite) TestMaxOpenTables() {
	s.params.MaxOpenTables = 1
	id := s.create(1000, 2, 0)
	_, err := s.exec.ExecTx(gty.CreateRawTableCreateTx(s.banker, 1000, MakeCommitment(3), 0))
	s.Equal(gty.ErrCapacityExceeded, errors.Cause(err))
	s.Equal(int64(initBalance-1000), s.balance(s.banker))

	s.emitter.On("Emit", mock.Anything).Once()
	_, err = s.reveal(s.banker, id, 2)
	s.Require().NoError(err)
	s.Equal(int64(2), s.create(1000, 3, 0))
}

func (s *GuessCoinTestSuite) TestJoinWindow() {
	id := s.create(1000, 7, 20)
	s.mineTo(13)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 10))
	s.mineTo(14)
	s.Equal(gty.ErrInvalidState, errors.Cause(s.join(s.alice, id, gty.GuessFront, 10)))
	s.mineTo(15)
	s.Equal(gty.ErrInvalidState, errors.Cause(s.join(s.bob, id, gty.GuessBack, 10)))
	s.Equal(int64(initBalance), s.balance(s.bob))
	s.Len(s.table(id).Players, 1)
}

func (s *GuessCoinTestSuite) TestJoinInvalid() {
	id := s.create(1000, 7, 20)
	s.Equal(gty.ErrNotFound, errors.Cause(s.join(s.alice, 99, gty.GuessFront, 10)))
	s.Equal(gty.ErrInvalidArgument, errors.Cause(s.join(s.alice, id, 2, 10)))
	s.Equal(gty.ErrInvalidArgument, errors.Cause(s.join(s.alice, id, gty.GuessFront, 0)))

	s.params.MinWager = 50
	s.Equal(gty.ErrInvalidArgument, errors.Cause(s.join(s.alice, id, gty.GuessFront, 49)))
	s.NoError(s.join(s.alice, id, gty.GuessFront, 50))
	s.Equal(int64(initBalance-50), s.balance(s.alice))

	// banker may join the own table
	s.NoError(s.join(s.banker, id, gty.GuessBack, 50))
}

func (s *GuessCoinTestSuite) TestJoinCapacity() {
	id := s.create(1000, 7, 20)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 600))
	s.NoError(s.join(s.bob, id, gty.GuessBack, 200))
	// 600 + 600 - 200 == collateral
	s.NoError(s.join(s.alice, id, gty.GuessFront, 600))
	err := s.join(s.bob, id, gty.GuessFront, 1)
	s.Equal(gty.ErrCapacityExceeded, errors.Cause(err))
	s.Equal(int64(initBalance-200), s.balance(s.bob))

	// opposite side still accepted
	s.NoError(s.join(s.bob, id, gty.GuessBack, 1000))
	players := s.table(id).Players
	s.Require().Len(players, 4)
	s.Equal(s.alice, players[0].Addr)
	s.Equal(int64(1000), players[3].Staked)
}

func (s *GuessCoinTestSuite) TestRevealPush() {
	id := s.create(1000, 7, 10)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 100))
	s.NoError(s.join(s.bob, id, gty.GuessBack, 100))
	s.mineTo(10)

	var emitted *gty.DistributionRecord
	s.emitter.On("Emit", mock.Anything).Run(func(args mock.Arguments) {
		emitted = args.Get(0).(*gty.DistributionRecord)
	}).Once()
	systemBefore := s.balance(s.params.SystemAddr)
	receipt, err := s.reveal(s.bob, id, 7)
	s.Require().NoError(err)
	s.Equal(int32(types.ExecOk), receipt.Ty)
	s.emitter.AssertNumberOfCalls(s.T(), "Emit", 1)

	s.Equal(int64(initBalance-100+189), s.balance(s.alice))
	s.Equal(int64(initBalance-100), s.balance(s.bob))
	s.Equal(int64(initBalance-1000+1010), s.balance(s.banker))
	s.Equal(systemBefore+1, s.balance(s.params.SystemAddr))
	s.Equal(int64(0), s.execBalance())

	table := s.table(id)
	s.Equal(int32(gty.TableStatusSettled), table.Status)
	s.True(table.Revealed)
	s.Equal(int64(7), table.RevealedSecret)
	s.Equal(int32(gty.GuessFront), table.RevealedParity)
	s.Equal(int64(189), table.Players[0].Payout)
	s.Equal(int64(0), table.Players[1].Payout)
	s.Equal(int64(10), table.SettleHeight)
	s.Empty(s.openTables())

	record := s.distribution(id)
	s.Equal(int32(gty.RegimePush), record.Regime)
	s.Equal(int64(1010), record.BankerPaid)
	s.Equal(int64(10), record.BankerCompensation)
	s.Equal(int64(1200), record.TotalPaid())
	s.Require().NotNil(emitted)
	s.Equal(record, emitted)

	var found bool
	for _, l := range receipt.Logs {
		if l.Ty == gty.TyLogGuessCoinDistribution {
			var r gty.DistributionRecord
			s.Require().NoError(types.Decode(l.Log, &r))
			s.Equal(record, &r)
			found = true
		}
	}
	s.True(found)
}

func (s *GuessCoinTestSuite) TestRevealTooEarly() {
	id := s.create(1000, 7, 10)
	s.mineTo(9)
	_, err := s.reveal(s.banker, id, 7)
	s.Equal(gty.ErrInvalidState, errors.Cause(err))
	_, err = s.reveal(s.banker, 42, 7)
	s.Equal(gty.ErrNotFound, errors.Cause(err))
}

func (s *GuessCoinTestSuite) TestCommitmentMismatch() {
	id := s.create(1000, 8, 10)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 100))
	s.mineTo(10)
	before := metrics.Snapshot(metrics.DefaultRegistry)[MetricRevealMismatch]
	_, err := s.reveal(s.banker, id, 9)
	s.Equal(gty.ErrCommitmentMismatch, errors.Cause(err))
	s.Equal(before+1, metrics.Snapshot(metrics.DefaultRegistry)[MetricRevealMismatch])
	s.emitter.AssertNotCalled(s.T(), "Emit", mock.Anything)

	table := s.table(id)
	s.True(table.IsOpen())
	s.False(table.Revealed)
	s.Len(table.Players, 1)
	s.Equal(int64(1100), s.execBalance())

	s.emitter.On("Emit", mock.Anything).Once()
	_, err = s.reveal(s.banker, id, 8)
	s.Require().NoError(err)
	// even secret, alice loses and the profit is taxed
	s.Equal(int64(initBalance+99), s.balance(s.banker))
}

func (s *GuessCoinTestSuite) TestSingleSettlement() {
	id := s.create(1000, 5, 10)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 100))
	s.mineTo(400)
	s.emitter.On("Emit", mock.Anything).Once()
	_, err := s.reveal(s.banker, id, 5)
	s.Require().NoError(err)
	alice, banker := s.balance(s.alice), s.balance(s.banker)
	table := s.table(id)

	_, err = s.reveal(s.banker, id, 5)
	s.Equal(gty.ErrInvalidState, errors.Cause(err))
	_, err = s.forfeit(s.alice, id)
	s.Equal(gty.ErrInvalidState, errors.Cause(err))
	s.Equal(gty.ErrInvalidState, errors.Cause(s.join(s.bob, id, gty.GuessBack, 10)))

	s.emitter.AssertNumberOfCalls(s.T(), "Emit", 1)
	s.Equal(alice, s.balance(s.alice))
	s.Equal(banker, s.balance(s.banker))
	s.Equal(table, s.table(id))
}

func (s *GuessCoinTestSuite) TestEmptyTableRefund() {
	s.emitter.On("Emit", mock.Anything).Twice()
	id := s.create(1000, 3, 0)
	_, err := s.reveal(s.alice, id, 3)
	s.Require().NoError(err)
	s.Equal(int64(initBalance), s.balance(s.banker))
	record := s.distribution(id)
	s.Empty(record.Players)
	s.Equal(int64(1000), record.BankerPaid)

	id = s.create(1000, 4, 0)
	s.mineTo(s.params.GracePeriod)
	_, err = s.forfeit(s.alice, id)
	s.Require().NoError(err)
	s.Equal(int64(initBalance), s.balance(s.banker))
	s.Equal(int32(gty.TableStatusForfeited), s.table(id).Status)
	s.Empty(s.distribution(id).Players)
	s.Equal(int64(0), s.execBalance())
}

func (s *GuessCoinTestSuite) TestForfeitTiming() {
	id := s.create(1000, 3, 10)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 300))
	s.NoError(s.join(s.bob, id, gty.GuessBack, 100))

	s.mineTo(10 + s.params.GracePeriod - 1)
	_, err := s.forfeit(s.bob, id)
	s.Equal(gty.ErrInvalidState, errors.Cause(err))

	s.mineTo(10 + s.params.GracePeriod)
	s.emitter.On("Emit", mock.Anything).Once()
	_, err = s.forfeit(s.bob, id)
	s.Require().NoError(err)

	s.Equal(int64(initBalance-300+597), s.balance(s.alice))
	s.Equal(int64(initBalance-100+199), s.balance(s.bob))
	s.Equal(int64(initBalance-1000+600), s.balance(s.banker))
	s.Equal(int64(0), s.execBalance())
	table := s.table(id)
	s.Equal(int32(gty.TableStatusForfeited), table.Status)
	s.False(table.Revealed)
	record := s.distribution(id)
	s.Equal(int32(gty.DistKindForfeit), record.Kind)
	s.Equal(int32(gty.RegimeNone), record.Regime)

	// banker can no longer reveal
	_, err = s.reveal(s.banker, id, 3)
	s.Equal(gty.ErrInvalidState, errors.Cause(err))
}

func (s *GuessCoinTestSuite) TestAmountRejected() {
	id := s.create(1000, 3, 0)
	tx := gty.CreateRawTableRevealTx(s.banker, id, 3)
	tx.Amount = 5
	_, err := s.exec.ExecTx(tx)
	s.Equal(gty.ErrInvalidArgument, errors.Cause(err))

	s.mineTo(s.params.GracePeriod)
	tx = gty.CreateRawTableForfeitTx(s.alice, id)
	tx.Amount = 5
	_, err = s.exec.ExecTx(tx)
	s.Equal(gty.ErrInvalidArgument, errors.Cause(err))
	s.Equal(int64(initBalance), s.balance(s.alice))
	s.True(s.table(id).IsOpen())
}

func (s *GuessCoinTestSuite) TestRevealProfitWithDeployerFee() {
	s.params.DeployerFee = decimal.New(2, -2)
	s.Require().NoError(s.params.Validate())
	id := s.create(1000, 4, 10)
	s.NoError(s.join(s.alice, id, gty.GuessFront, 300))
	s.NoError(s.join(s.bob, id, gty.GuessBack, 100))
	s.mineTo(10)

	deployerBefore := s.balance(s.params.DeployerAddr)
	systemBefore := s.balance(s.params.SystemAddr)
	s.emitter.On("Emit", mock.Anything).Once()
	_, err := s.reveal(s.banker, id, 4)
	s.Require().NoError(err)

	// bob: 97 payout, 2 deployer, 1 system. banker profit 200: 194 kept, 4 deployer, 2 system
	s.Equal(int64(initBalance+97), s.balance(s.bob))
	s.Equal(int64(initBalance-300), s.balance(s.alice))
	s.Equal(int64(initBalance+194), s.balance(s.banker))
	s.Equal(deployerBefore+6, s.balance(s.params.DeployerAddr))
	s.Equal(systemBefore+3, s.balance(s.params.SystemAddr))
	s.Equal(int64(0), s.execBalance())

	record := s.distribution(id)
	s.Equal(int32(gty.RegimeProfit), record.Regime)
	s.Equal(int64(6), record.DeployerFee)
	s.Equal(int64(3), record.SystemFee)
	s.emitter.AssertNumberOfCalls(s.T(), "Emit", 1)
}

func (s *GuessCoinTestSuite) TestBadPayload() {
	tx := &types.Transaction{Execer: gty.GuessCoinX, From: s.alice, Payload: []byte{0xff}}
	_, err := s.exec.ExecTx(tx)
	s.Equal(gty.ErrInvalidArgument, errors.Cause(err))

	tx.Payload = types.Encode(&gty.GuessCoinAction{Ty: gty.GuessCoinActionJoin})
	_, err = s.exec.ExecTx(tx)
	s.Equal(gty.ErrInvalidArgument, errors.Cause(err))

	tx = gty.CreateRawTableJoinTx("not an address", 1, gty.GuessFront, 1)
	_, err = s.exec.ExecTx(tx)
	s.Equal(gty.ErrInvalidArgument, errors.Cause(err))
}

func TestEmitAfterCommit(t *testing.T) {
	prevParams, prevEmitter := currentConf()
	defer func() {
		SetParams(prevParams)
		SetEmitter(prevEmitter)
	}()
	SetParams(gty.DefaultParams())
	e := &mockEmitter{}
	SetEmitter(e)

	db, err := dbm.NewGoMemDB("guesscoin", "", 0)
	require.NoError(t, err)
	banker := address.PubKeyToAddress([]byte("banker")).String()
	alice := address.PubKeyToAddress([]byte("alice")).String()

	g := newGuessCoin().(*GuessCoin)
	g.SetStateDB(db)
	g.SetEnv(0, 0)
	// 交易金额由执行框架转入合约地址
	_, err = g.GetCoinsAccount().Deposit(g.GetExecAddress(), 1100)
	require.NoError(t, err)
	_, err = g.Exec(gty.CreateRawTableCreateTx(banker, 1000, MakeCommitment(3), 10), 0)
	require.NoError(t, err)
	_, err = g.Exec(gty.CreateRawTableJoinTx(alice, 1, gty.GuessFront, 100), 0)
	require.NoError(t, err)

	g.SetEnv(10, 0)
	_, err = g.Exec(gty.CreateRawTableRevealTx(banker, 1, 3), 0)
	require.NoError(t, err)
	e.AssertNotCalled(t, "Emit", mock.Anything)

	e.On("Emit", mock.Anything).Once()
	g.ExecCommitted()
	e.AssertNumberOfCalls(t, "Emit", 1)
	g.ExecCommitted()
	e.AssertNumberOfCalls(t, "Emit", 1)
}

func TestGuessCoinTestSuite(t *testing.T) {
	suite.Run(t, new(GuessCoinTestSuite))
}
