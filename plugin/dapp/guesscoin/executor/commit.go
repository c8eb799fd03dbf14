// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"

	"github.com/33cn/guesscoin/common"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/pkg/errors"
)

// commitment 是 64 位小写 hex
const commitmentLen = 64

// MakeCommitment hex(SHA3-256(十进制字符串))
func MakeCommitment(secret int64) string {
	return common.HashHex(common.Sha3Sum256([]byte(strconv.FormatInt(secret, 10))))
}

// VerifyCommitment 秘密数是否和承诺一致
func VerifyCommitment(secret int64, commitment string) bool {
	normalized, err := NormalizeCommitment(commitment)
	if err != nil {
		return false
	}
	return MakeCommitment(secret) == normalized
}

// NormalizeCommitment 去掉 0x 前缀, 转为小写并检查格式
func NormalizeCommitment(commitment string) (string, error) {
	c := common.TrimHexPrefix(commitment)
	if len(c) != commitmentLen {
		return "", errors.Wrapf(gty.ErrInvalidArgument, "commitment length %d", len(c))
	}
	if _, err := common.FromHex(c); err != nil {
		return "", errors.Wrapf(gty.ErrInvalidArgument, "commitment %s not hex", commitment)
	}
	return c, nil
}

// Parity 秘密数的奇偶, 负数按补码最低位
func Parity(secret int64) int32 {
	return int32(secret & 1)
}
