// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// GuessCoinX 执行器名
const GuessCoinX = "guesscoin"

//guesscoin action ty
const (
	GuessCoinActionCreate = iota + 1
	GuessCoinActionJoin
	GuessCoinActionReveal
	GuessCoinActionForfeit
)

// action names, 执行器上对应 Exec_<name>
const (
	ActionCreate  = "Create"
	ActionJoin    = "Join"
	ActionReveal  = "Reveal"
	ActionForfeit = "Forfeit"
)

// log ty
const (
	TyLogGuessCoinCreate       = 801
	TyLogGuessCoinJoin         = 802
	TyLogGuessCoinReveal       = 803
	TyLogGuessCoinForfeit      = 804
	TyLogGuessCoinDistribution = 805
)

// table status, 结束状态只能写入一次
const (
	TableStatusOpen      = 1
	TableStatusSettled   = 2
	TableStatusForfeited = 3
)

// guess, 和秘密数的奇偶性比较
const (
	GuessBack  = 0 // even
	GuessFront = 1 // odd
)

// distribution kind
const (
	DistKindReveal  = 1
	DistKindForfeit = 2
)

// banker regime
const (
	RegimeNone   = 0
	RegimeLoss   = 1
	RegimePush   = 2
	RegimeProfit = 3
)

// query func names
const (
	FuncNameGetTable        = "GetTable"
	FuncNameListOpenTables  = "ListOpenTables"
	FuncNameGetDistribution = "GetDistribution"
)

// StatusString 状态名
func StatusString(status int32) string {
	switch status {
	case TableStatusOpen:
		return "open"
	case TableStatusSettled:
		return "settled"
	case TableStatusForfeited:
		return "forfeited"
	}
	return "unknown"
}

// GuessString front / back
func GuessString(guess int32) string {
	switch guess {
	case GuessFront:
		return "front"
	case GuessBack:
		return "back"
	}
	return "unknown"
}

// RegimeString 庄家结果
func RegimeString(regime int32) string {
	switch regime {
	case RegimeLoss:
		return "loss"
	case RegimePush:
		return "push"
	case RegimeProfit:
		return "profit"
	}
	return "none"
}
