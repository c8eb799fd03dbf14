// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/pkg/errors"

// 合约返回的错误都是下面其中一种的 wrap, errors.Cause 得到种类
var (
	ErrInvalidArgument    = errors.New("ErrInvalidArgument")
	ErrNotFound           = errors.New("ErrTableNotFound")
	ErrInvalidState       = errors.New("ErrInvalidState")
	ErrCommitmentMismatch = errors.New("ErrCommitmentMismatch")
	ErrCapacityExceeded   = errors.New("ErrCapacityExceeded")
)

var kinds = []error{
	ErrInvalidArgument,
	ErrNotFound,
	ErrInvalidState,
	ErrCommitmentMismatch,
	ErrCapacityExceeded,
}

// Kind 返回错误种类, 不是合约错误时返回 nil
func Kind(err error) error {
	cause := errors.Cause(err)
	for _, k := range kinds {
		if cause == k {
			return k
		}
	}
	return nil
}
