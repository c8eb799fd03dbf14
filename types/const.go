// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin    int64 = 1e8
	MaxCoin int64 = 1e17
)

// TitleDefault default title of the local chain
const TitleDefault = "guesscoin"

// CoinsSymbol symbol of the native coin
const CoinsSymbol = "bty"

// log type
const (
	TyLogReserved = 0
	TyLogErr      = 1
	TyLogFee      = 2
	TyLogTransfer = 3
	TyLogGenesis  = 4
	TyLogDeposit  = 5
)

// exec type
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// CheckAmount 检查金额是否合法
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}
