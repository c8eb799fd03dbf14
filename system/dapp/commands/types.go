// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/guesscoin/common"
	"github.com/33cn/guesscoin/types"
)

// AccountResult 账户
type AccountResult struct {
	Addr    string `json:"addr"`
	Balance int64  `json:"balance"`
	Frozen  int64  `json:"frozen"`
}

// ReceiptLogResult 解析后的日志
type ReceiptLogResult struct {
	Ty     int32       `json:"ty"`
	TyName string      `json:"tyName"`
	Log    interface{} `json:"log"`
	RawLog string      `json:"rawLog,omitempty"`
}

// ReceiptResult 交易回执
type ReceiptResult struct {
	Ty   int32               `json:"ty"`
	Logs []*ReceiptLogResult `json:"logs"`
}

// LogDecoder 插件解析自己的日志, 不认识时返回 false
type LogDecoder func(ty int32, log []byte) (name string, value interface{}, ok bool)

var systemLogNames = map[int32]string{
	types.TyLogErr:      "LogErr",
	types.TyLogFee:      "LogFee",
	types.TyLogTransfer: "LogTransfer",
	types.TyLogGenesis:  "LogGenesis",
	types.TyLogDeposit:  "LogDeposit",
}

func decodeSystemLog(ty int32, log []byte) (string, interface{}, bool) {
	name, ok := systemLogNames[ty]
	if !ok {
		return "", nil, false
	}
	if ty == types.TyLogTransfer || ty == types.TyLogDeposit {
		var r types.ReceiptAccountTransfer
		if err := types.Decode(log, &r); err != nil {
			return name, nil, false
		}
		return name, &r, true
	}
	return name, nil, false
}

// DecodeReceipt 依次尝试系统和插件的解析
func DecodeReceipt(receipt *types.Receipt, decoders ...LogDecoder) *ReceiptResult {
	result := &ReceiptResult{Ty: receipt.Ty}
	decoders = append([]LogDecoder{decodeSystemLog}, decoders...)
	for _, l := range receipt.Logs {
		item := &ReceiptLogResult{Ty: l.Ty, TyName: "LogReserved"}
		for _, decode := range decoders {
			name, value, ok := decode(l.Ty, l.Log)
			if name != "" {
				item.TyName = name
			}
			if ok {
				item.Log = value
				break
			}
		}
		if item.Log == nil {
			item.RawLog = common.ToHex(l.Log)
		}
		result.Logs = append(result.Logs, item)
	}
	return result
}
