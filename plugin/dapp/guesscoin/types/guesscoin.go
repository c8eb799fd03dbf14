// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 猜硬币合约的数据结构
package types

import (
	"math/rand"
	"reflect"

	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

var tlog = log.New("module", GuessCoinX)

func nextNonce() int64 {
	return rand.Int63()
}

// GuessCoinType 解析交易和查询参数
type GuessCoinType struct{}

// NewType new
func NewType() *GuessCoinType {
	return &GuessCoinType{}
}

// GetTypeMap action 名到 ty 的映射
func (g *GuessCoinType) GetTypeMap() map[string]int32 {
	return map[string]int32{
		ActionCreate:  GuessCoinActionCreate,
		ActionJoin:    GuessCoinActionJoin,
		ActionReveal:  GuessCoinActionReveal,
		ActionForfeit: GuessCoinActionForfeit,
	}
}

// GetLogMap log ty 对应的名字
func (g *GuessCoinType) GetLogMap() map[int32]string {
	return map[int32]string{
		TyLogGuessCoinCreate:       "LogGuessCoinCreate",
		TyLogGuessCoinJoin:         "LogGuessCoinJoin",
		TyLogGuessCoinReveal:       "LogGuessCoinReveal",
		TyLogGuessCoinForfeit:      "LogGuessCoinForfeit",
		TyLogGuessCoinDistribution: "LogGuessCoinDistribution",
	}
}

// DecodePayloadValue 返回 action 名和对应的参数
func (g *GuessCoinType) DecodePayloadValue(tx *types.Transaction) (string, reflect.Value, error) {
	var action GuessCoinAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		tlog.Error("DecodePayloadValue", "err", err)
		return "", reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	var name string
	switch action.Ty {
	case GuessCoinActionCreate:
		if action.Create != nil {
			return ActionCreate, reflect.ValueOf(action.Create), nil
		}
		name = ActionCreate
	case GuessCoinActionJoin:
		if action.Join != nil {
			return ActionJoin, reflect.ValueOf(action.Join), nil
		}
		name = ActionJoin
	case GuessCoinActionReveal:
		if action.Reveal != nil {
			return ActionReveal, reflect.ValueOf(action.Reveal), nil
		}
		name = ActionReveal
	case GuessCoinActionForfeit:
		if action.Forfeit != nil {
			return ActionForfeit, reflect.ValueOf(action.Forfeit), nil
		}
		name = ActionForfeit
	default:
		return "", reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "unknown action ty %d", action.Ty)
	}
	return "", reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "action %s without value", name)
}

// DecodeQueryParam 查询参数
func (g *GuessCoinType) DecodeQueryParam(funcName string, params []byte) (reflect.Value, error) {
	var msg types.Message
	switch funcName {
	case FuncNameGetTable, FuncNameGetDistribution:
		msg = &ReqTableID{}
	case FuncNameListOpenTables:
		msg = &ReqNil{}
	default:
		return reflect.Value{}, errors.Wrap(types.ErrQueryNotSupport, funcName)
	}
	if err := types.Decode(params, msg); err != nil {
		return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	return reflect.ValueOf(msg), nil
}
