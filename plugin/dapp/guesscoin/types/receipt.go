// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/guesscoin/types"
)

// ReceiptTable 桌子状态变化的日志
type ReceiptTable struct {
	TableID int64  `json:"tableId"`
	Status  int32  `json:"status"`
	Addr    string `json:"addr"`
	Height  int64  `json:"height"`
	Amount  int64  `json:"amount"`
	Guess   int32  `json:"guess"`
}

// Marshal encode
func (r *ReceiptTable) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, r.TableID)
	p.EncodeInt32(2, r.Status)
	p.EncodeString(3, r.Addr)
	p.EncodeInt64(4, r.Height)
	p.EncodeInt64(5, r.Amount)
	p.EncodeInt32(6, r.Guess)
	return p.Bytes()
}

// Unmarshal decode
func (r *ReceiptTable) Unmarshal(b []byte) error {
	*r = ReceiptTable{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			r.TableID = f.Int64()
		case 2:
			r.Status = f.Int32()
		case 3:
			r.Addr = f.String()
		case 4:
			r.Height = f.Int64()
		case 5:
			r.Amount = f.Int64()
		case 6:
			r.Guess = f.Int32()
		}
		return nil
	})
}

// DistributionRecord 一次结算的完整分配, 每局最多一条
type DistributionRecord struct {
	TableID            int64        `json:"tableId"`
	Kind               int32        `json:"kind"`
	Regime             int32        `json:"regime"`
	Banker             string       `json:"banker"`
	Collateral         int64        `json:"collateral"`
	Players            []*PlayerNet `json:"players"`
	BankerNet          int64        `json:"bankerNet"`
	BankerPaid         int64        `json:"bankerPaid"`
	SystemFee          int64        `json:"systemFee"`
	DeployerFee        int64        `json:"deployerFee"`
	BankerCompensation int64        `json:"bankerCompensation"`
	Secret             int64        `json:"secret"`
	Parity             int32        `json:"parity"`
	Height             int64        `json:"height"`
}

// PlayerNet 玩家在结算中的收支
type PlayerNet struct {
	Addr   string `json:"addr"`
	Guess  int32  `json:"guess"`
	Staked int64  `json:"staked"`
	Paid   int64  `json:"paid"`
	// Paid - Staked
	Net int64 `json:"net"`
}

// TotalPaid 所有从合约地址转出的金额
func (r *DistributionRecord) TotalPaid() int64 {
	total := r.BankerPaid + r.SystemFee + r.DeployerFee
	for _, p := range r.Players {
		total += p.Paid
	}
	return total
}

// Marshal encode
func (r *DistributionRecord) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, r.TableID)
	p.EncodeInt32(2, r.Kind)
	p.EncodeInt32(3, r.Regime)
	p.EncodeString(4, r.Banker)
	p.EncodeInt64(5, r.Collateral)
	for _, player := range r.Players {
		p.EncodeMessage(6, player)
	}
	p.EncodeInt64(7, r.BankerNet)
	p.EncodeInt64(8, r.BankerPaid)
	p.EncodeInt64(9, r.SystemFee)
	p.EncodeInt64(10, r.DeployerFee)
	p.EncodeInt64(11, r.BankerCompensation)
	p.EncodeInt64(12, r.Secret)
	p.EncodeInt32(13, r.Parity)
	p.EncodeInt64(14, r.Height)
	return p.Bytes()
}

// Unmarshal decode
func (r *DistributionRecord) Unmarshal(b []byte) error {
	*r = DistributionRecord{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			r.TableID = f.Int64()
		case 2:
			r.Kind = f.Int32()
		case 3:
			r.Regime = f.Int32()
		case 4:
			r.Banker = f.String()
		case 5:
			r.Collateral = f.Int64()
		case 6:
			player := &PlayerNet{}
			if err := player.Unmarshal(f.Bytes); err != nil {
				return err
			}
			r.Players = append(r.Players, player)
		case 7:
			r.BankerNet = f.Int64()
		case 8:
			r.BankerPaid = f.Int64()
		case 9:
			r.SystemFee = f.Int64()
		case 10:
			r.DeployerFee = f.Int64()
		case 11:
			r.BankerCompensation = f.Int64()
		case 12:
			r.Secret = f.Int64()
		case 13:
			r.Parity = f.Int32()
		case 14:
			r.Height = f.Int64()
		}
		return nil
	})
}

// Marshal encode
func (p *PlayerNet) Marshal() []byte {
	var buf types.Buffer
	buf.EncodeString(1, p.Addr)
	buf.EncodeInt32(2, p.Guess)
	buf.EncodeInt64(3, p.Staked)
	buf.EncodeInt64(4, p.Paid)
	buf.EncodeInt64(5, p.Net)
	return buf.Bytes()
}

// Unmarshal decode
func (p *PlayerNet) Unmarshal(b []byte) error {
	*p = PlayerNet{}
	return types.WalkFields(b, func(f *types.Field) error {
		switch f.Num {
		case 1:
			p.Addr = f.String()
		case 2:
			p.Guess = f.Int32()
		case 3:
			p.Staked = f.Int64()
		case 4:
			p.Paid = f.Int64()
		case 5:
			p.Net = f.Int64()
		}
		return nil
	})
}

// ReqTableID 按 id 查询
type ReqTableID struct {
	ID int64 `json:"id"`
}

// Marshal encode
func (r *ReqTableID) Marshal() []byte {
	var p types.Buffer
	p.EncodeInt64(1, r.ID)
	return p.Bytes()
}

// Unmarshal decode
func (r *ReqTableID) Unmarshal(b []byte) error {
	r.ID = 0
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			r.ID = f.Int64()
		}
		return nil
	})
}

// ReqNil 没有参数的查询
type ReqNil struct{}

// Marshal encode
func (r *ReqNil) Marshal() []byte {
	return nil
}

// Unmarshal decode
func (r *ReqNil) Unmarshal(b []byte) error {
	return types.WalkFields(b, func(f *types.Field) error { return nil })
}

// ReplyTable 单个桌子
type ReplyTable struct {
	Table *Table `json:"table"`
}

// Marshal encode
func (r *ReplyTable) Marshal() []byte {
	var p types.Buffer
	if r.Table != nil {
		p.EncodeMessage(1, r.Table)
	}
	return p.Bytes()
}

// Unmarshal decode
func (r *ReplyTable) Unmarshal(b []byte) error {
	r.Table = nil
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			r.Table = &Table{}
			return r.Table.Unmarshal(f.Bytes)
		}
		return nil
	})
}

// ReplyTableList 多个桌子
type ReplyTableList struct {
	Tables []*Table `json:"tables"`
}

// Marshal encode
func (r *ReplyTableList) Marshal() []byte {
	var p types.Buffer
	for _, t := range r.Tables {
		p.EncodeMessage(1, t)
	}
	return p.Bytes()
}

// Unmarshal decode
func (r *ReplyTableList) Unmarshal(b []byte) error {
	r.Tables = nil
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			t := &Table{}
			if err := t.Unmarshal(f.Bytes); err != nil {
				return err
			}
			r.Tables = append(r.Tables, t)
		}
		return nil
	})
}

// ReplyDistribution 结算记录
type ReplyDistribution struct {
	Record *DistributionRecord `json:"record"`
}

// Marshal encode
func (r *ReplyDistribution) Marshal() []byte {
	var p types.Buffer
	if r.Record != nil {
		p.EncodeMessage(1, r.Record)
	}
	return p.Bytes()
}

// Unmarshal decode
func (r *ReplyDistribution) Unmarshal(b []byte) error {
	r.Record = nil
	return types.WalkFields(b, func(f *types.Field) error {
		if f.Num == 1 {
			r.Record = &DistributionRecord{}
			return r.Record.Unmarshal(f.Bytes)
		}
		return nil
	})
}
