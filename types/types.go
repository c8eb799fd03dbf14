// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "crypto/sha256"

// KeyValue state db key value
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ReceiptLog typed log produced by an executor
type ReceiptLog struct {
	Ty  int32
	Log []byte
}

// Receipt result of executing one transaction
type Receipt struct {
	Ty   int32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

// MergeReceipt append the kv and logs of r2 to r1
func MergeReceipt(r1, r2 *Receipt) *Receipt {
	if r1 == nil {
		return r2
	}
	if r2 == nil {
		return r1
	}
	r1.KV = append(r1.KV, r2.KV...)
	r1.Logs = append(r1.Logs, r2.Logs...)
	return r1
}

// Account coins account
type Account struct {
	Currency int32
	Balance  int64
	Frozen   int64
	Addr     string
}

// GetBalance nil safe getter
func (m *Account) GetBalance() int64 {
	if m == nil {
		return 0
	}
	return m.Balance
}

// GetFrozen nil safe getter
func (m *Account) GetFrozen() int64 {
	if m == nil {
		return 0
	}
	return m.Frozen
}

// Marshal encode
func (m *Account) Marshal() []byte {
	var p Buffer
	p.EncodeInt32(1, m.Currency)
	p.EncodeInt64(2, m.Balance)
	p.EncodeInt64(3, m.Frozen)
	p.EncodeString(4, m.Addr)
	return p.Bytes()
}

// Unmarshal decode
func (m *Account) Unmarshal(b []byte) error {
	*m = Account{}
	return WalkFields(b, func(f *Field) error {
		switch f.Num {
		case 1:
			m.Currency = f.Int32()
		case 2:
			m.Balance = f.Int64()
		case 3:
			m.Frozen = f.Int64()
		case 4:
			m.Addr = f.String()
		}
		return nil
	})
}

// ReceiptAccountTransfer balance change of one account
type ReceiptAccountTransfer struct {
	Prev    *Account
	Current *Account
}

// Marshal encode
func (m *ReceiptAccountTransfer) Marshal() []byte {
	var p Buffer
	if m.Prev != nil {
		p.EncodeMessage(1, m.Prev)
	}
	if m.Current != nil {
		p.EncodeMessage(2, m.Current)
	}
	return p.Bytes()
}

// Unmarshal decode
func (m *ReceiptAccountTransfer) Unmarshal(b []byte) error {
	*m = ReceiptAccountTransfer{}
	return WalkFields(b, func(f *Field) error {
		switch f.Num {
		case 1:
			m.Prev = &Account{}
			return m.Prev.Unmarshal(f.Bytes)
		case 2:
			m.Current = &Account{}
			return m.Current.Unmarshal(f.Bytes)
		}
		return nil
	})
}

// Int64 single int64 value
type Int64 struct {
	Data int64
}

// Marshal encode
func (m *Int64) Marshal() []byte {
	var p Buffer
	p.EncodeInt64(1, m.Data)
	return p.Bytes()
}

// Unmarshal decode
func (m *Int64) Unmarshal(b []byte) error {
	m.Data = 0
	return WalkFields(b, func(f *Field) error {
		if f.Num == 1 {
			m.Data = f.Int64()
		}
		return nil
	})
}

// Transaction a call into an executor. Amount is paid by From to the executor address
// in the same unit of execution as the call itself.
type Transaction struct {
	Execer  string
	From    string
	Payload []byte
	Amount  int64
	Nonce   int64
}

// Marshal encode
func (tx *Transaction) Marshal() []byte {
	var p Buffer
	p.EncodeString(1, tx.Execer)
	p.EncodeString(2, tx.From)
	p.EncodeBytes(3, tx.Payload)
	p.EncodeInt64(4, tx.Amount)
	p.EncodeInt64(5, tx.Nonce)
	return p.Bytes()
}

// Unmarshal decode
func (tx *Transaction) Unmarshal(b []byte) error {
	*tx = Transaction{}
	return WalkFields(b, func(f *Field) error {
		switch f.Num {
		case 1:
			tx.Execer = f.String()
		case 2:
			tx.From = f.String()
		case 3:
			tx.Payload = f.CopyBytes()
		case 4:
			tx.Amount = f.Int64()
		case 5:
			tx.Nonce = f.Int64()
		}
		return nil
	})
}

// Hash sha256 of the encoded transaction
func (tx *Transaction) Hash() []byte {
	h := sha256.Sum256(tx.Marshal())
	return h[:]
}

// Header 本地链的区块头, 只记录高度和出块时间
type Header struct {
	Height    int64
	BlockTime int64
}

// Marshal encode
func (m *Header) Marshal() []byte {
	var p Buffer
	p.EncodeInt64(1, m.Height)
	p.EncodeInt64(2, m.BlockTime)
	return p.Bytes()
}

// Unmarshal decode
func (m *Header) Unmarshal(b []byte) error {
	*m = Header{}
	return WalkFields(b, func(f *Field) error {
		switch f.Num {
		case 1:
			m.Height = f.Int64()
		case 2:
			m.BlockTime = f.Int64()
		}
		return nil
	})
}
