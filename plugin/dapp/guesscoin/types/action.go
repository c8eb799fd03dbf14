// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/guesscoin/types"
)

// GuessCoinAction 交易的 payload, 只有 Ty 对应的那个字段有值
type GuessCoinAction struct {
	Ty      int32
	Create  *TableCreate
	Join    *TableJoin
	Reveal  *TableReveal
	Forfeit *TableForfeit
}

// TableCreate 庄家开桌, 保证金是交易的 Amount
type TableCreate struct {
	Commitment        string
	RoundsUntilReveal int64
}

// TableJoin 下注, 金额是交易的 Amount
type TableJoin struct {
	TableID int64
	Guess   int32
}

// TableReveal 公开秘密数并结算, 任何人都可以发起
type TableReveal struct {
	TableID int64
	Secret  int64
}

// TableForfeit 庄家超时未公开, 任何人都可以发起
type TableForfeit struct {
	TableID int64
}

// Marshal encode
func (a *GuessCoinAction) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt32(1, a.Ty)
	if a.Create != nil {
		p.EncodeMessage(2, a.Create)
	}
	if a.Join != nil {
		p.EncodeMessage(3, a.Join)
	}
	if a.Reveal != nil {
		p.EncodeMessage(4, a.Reveal)
	}
	if a.Forfeit != nil {
		p.EncodeMessage(5, a.Forfeit)
	}
	return p.Bytes()
}

// Unmarshal decode
func (a *GuessCoinAction) Unmarshal(b []byte) error {
	*a = GuessCoinAction{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			a.Ty = f.Int32()
		case 2:
			a.Create = &TableCreate{}
			return a.Create.Unmarshal(f.Bytes)
		case 3:
			a.Join = &TableJoin{}
			return a.Join.Unmarshal(f.Bytes)
		case 4:
			a.Reveal = &TableReveal{}
			return a.Reveal.Unmarshal(f.Bytes)
		case 5:
			a.Forfeit = &TableForfeit{}
			return a.Forfeit.Unmarshal(f.Bytes)
		}
		return nil
	})
}

// Marshal encode
func (c *TableCreate) Marshal() []byte {
	var p types.Buffer
	p.EncodeString(1, c.Commitment)
	p.EncodeInt64(2, c.RoundsUntilReveal)
	return p.Bytes()
}

// Unmarshal decode
func (c *TableCreate) Unmarshal(b []byte) error {
	*c = TableCreate{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			c.Commitment = f.String()
		case 2:
			c.RoundsUntilReveal = f.Int64()
		}
		return nil
	})
}

// Marshal encode
func (j *TableJoin) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, j.TableID)
	p.EncodeInt32(2, j.Guess)
	return p.Bytes()
}

// Unmarshal decode
func (j *TableJoin) Unmarshal(b []byte) error {
	*j = TableJoin{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			j.TableID = f.Int64()
		case 2:
			j.Guess = f.Int32()
		}
		return nil
	})
}

// Marshal encode
func (r *TableReveal) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, r.TableID)
	p.EncodeInt64(2, r.Secret)
	return p.Bytes()
}

// Unmarshal decode
func (r *TableReveal) Unmarshal(b []byte) error {
	*r = TableReveal{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			r.TableID = f.Int64()
		case 2:
			r.Secret = f.Int64()
		}
		return nil
	})
}

// Marshal encode
func (r *TableForfeit) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, r.TableID)
	return p.Bytes()
}

// Unmarshal decode
func (r *TableForfeit) Unmarshal(b []byte) error {
	*r = TableForfeit{}
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			r.TableID = f.Int64()
		}
		return nil
	})
}

// CreateRawTableCreateTx 开桌交易
func CreateRawTableCreateTx(from string, collateral int64, commitment string, rounds int64) *types.Transaction {
	action := &GuessCoinAction{
		Ty:     GuessCoinActionCreate,
		Create: &TableCreate{Commitment: commitment, RoundsUntilReveal: rounds},
	}
	return newTx(from, collateral, action)
}

// CreateRawTableJoinTx 下注交易
func CreateRawTableJoinTx(from string, tableID int64, guess int32, wager int64) *types.Transaction {
	action := &GuessCoinAction{
		Ty:   GuessCoinActionJoin,
		Join: &TableJoin{TableID: tableID, Guess: guess},
	}
	return newTx(from, wager, action)
}

// CreateRawTableRevealTx 开奖交易
func CreateRawTableRevealTx(from string, tableID int64, secret int64) *types.Transaction {
	action := &GuessCoinAction{
		Ty:     GuessCoinActionReveal,
		Reveal: &TableReveal{TableID: tableID, Secret: secret},
	}
	return newTx(from, 0, action)
}

// CreateRawTableForfeitTx 庄家违约交易
func CreateRawTableForfeitTx(from string, tableID int64) *types.Transaction {
	action := &GuessCoinAction{
		Ty:      GuessCoinActionForfeit,
		Forfeit: &TableForfeit{TableID: tableID},
	}
	return newTx(from, 0, action)
}

func newTx(from string, amount int64, action *GuessCoinAction) *types.Transaction {
	return &types.Transaction{
		Execer:  GuessCoinX,
		From:    from,
		Amount:  amount,
		Payload: types.Encode(action),
		Nonce:   nextNonce(),
	}
}
