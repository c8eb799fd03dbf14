// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/guesscoin/types"
)

// Table 一局猜硬币
type Table struct {
	ID             int64     `json:"id"`
	Banker         string    `json:"banker"`
	Commitment     string    `json:"commitment"`
	Collateral     int64     `json:"collateral"`
	RevealDeadline int64     `json:"revealDeadline"`
	Status         int32     `json:"status"`
	Players        []*Player `json:"players"`
	RevealedSecret int64     `json:"revealedSecret,omitempty"`
	RevealedParity int32     `json:"revealedParity,omitempty"`
	Revealed       bool      `json:"revealed"`
	CreateHeight   int64     `json:"createHeight"`
	SettleHeight   int64     `json:"settleHeight,omitempty"`
	CreateTxHash   string    `json:"createTxHash"`
}

// Player 一次下注, 同一个地址可以下注多次
type Player struct {
	Addr   string `json:"addr"`
	Staked int64  `json:"staked"`
	Guess  int32  `json:"guess"`
	// 结算后实际支付给玩家的总额
	Payout int64 `json:"payout"`
}

// IsOpen 还可以下注和结算
func (t *Table) IsOpen() bool {
	return t.Status == TableStatusOpen
}

// Totals 正反两面的下注总额
func (t *Table) Totals() (front, back int64) {
	for _, p := range t.Players {
		if p.Guess == GuessFront {
			front += p.Staked
		} else {
			back += p.Staked
		}
	}
	return front, back
}

// TotalStaked 所有下注
func (t *Table) TotalStaked() int64 {
	front, back := t.Totals()
	return front + back
}

// Exposure 加入一笔下注之后, 庄家在 guess 这一面的净赔付
func (t *Table) Exposure(guess int32, deposit int64) int64 {
	front, back := t.Totals()
	if guess == GuessFront {
		return deposit + front - back
	}
	return deposit + back - front
}

// Marshal encode
func (t *Table) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, t.ID)
	p.EncodeString(2, t.Banker)
	p.EncodeString(3, t.Commitment)
	p.EncodeInt64(4, t.Collateral)
	p.EncodeInt64(5, t.RevealDeadline)
	p.EncodeInt32(6, t.Status)
	for _, player := range t.Players {
		p.EncodeMessage(7, player)
	}
	p.EncodeInt64(8, t.RevealedSecret)
	p.EncodeInt32(9, t.RevealedParity)
	p.EncodeBool(10, t.Revealed)
	p.EncodeInt64(11, t.CreateHeight)
	p.EncodeInt64(12, t.SettleHeight)
	p.EncodeString(13, t.CreateTxHash)
	return p.Bytes()
}

// Unmarshal decode
func (t *Table) Unmarshal(b []byte) error {
	*t = Table{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			t.ID = f.Int64()
		case 2:
			t.Banker = f.String()
		case 3:
			t.Commitment = f.String()
		case 4:
			t.Collateral = f.Int64()
		case 5:
			t.RevealDeadline = f.Int64()
		case 6:
			t.Status = f.Int32()
		case 7:
			player := &Player{}
			if err := player.Unmarshal(f.Bytes); err != nil {
				return err
			}
			t.Players = append(t.Players, player)
		case 8:
			t.RevealedSecret = f.Int64()
		case 9:
			t.RevealedParity = f.Int32()
		case 10:
			t.Revealed = f.Bool()
		case 11:
			t.CreateHeight = f.Int64()
		case 12:
			t.SettleHeight = f.Int64()
		case 13:
			t.CreateTxHash = f.String()
		}
		return nil
	})
}

// Marshal encode
func (p *Player) Marshal() []byte {
	var buf types.Buffer
	buf.EncodeString(1, p.Addr)
	buf.EncodeInt64(2, p.Staked)
	buf.EncodeInt32(3, p.Guess)
	buf.EncodeInt64(4, p.Payout)
	return buf.Bytes()
}

// Unmarshal decode
func (p *Player) Unmarshal(b []byte) error {
	*p = Player{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			p.Addr = f.String()
		case 2:
			p.Staked = f.Int64()
		case 3:
			p.Guess = f.Int32()
		case 4:
			p.Payout = f.Int64()
		}
		return nil
	})
}

// TableIDList 还在下注阶段的桌子, id 升序
type TableIDList struct {
	IDs []int64
}

// Marshal encode
func (l *TableIDList) Marshal() []byte {
	var p types.Buffer
	for _, id := range l.IDs {
		p.EncodeInt64(1, id)
	}
	return p.Bytes()
}

// Unmarshal decode
func (l *TableIDList) Unmarshal(b []byte) error {
	l.IDs = nil
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			l.IDs = append(l.IDs, f.Int64())
		}
		return nil
	})
}
