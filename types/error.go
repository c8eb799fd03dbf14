// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrNotFound          = errors.New("ErrNotFound")
	ErrAmount            = errors.New("ErrAmount")
	ErrNoBalance         = errors.New("ErrNoBalance")
	ErrSendSameToRecv    = errors.New("ErrSendSameToRecv")
	ErrActionNotSupport  = errors.New("ErrActionNotSupport")
	ErrExecNotFound      = errors.New("ErrExecNotFound")
	ErrExecNameNotAllow  = errors.New("ErrExecNameNotAllow")
	ErrInvalidAddress    = errors.New("ErrInvalidAddress")
	ErrInvalidParam      = errors.New("ErrInvalidParam")
	ErrDecode            = errors.New("ErrDecode")
	ErrConfigNotFound    = errors.New("ErrConfigNotFound")
	ErrDBBackendNotFound = errors.New("ErrDBBackendNotFound")
)

// chain errors
var (
	ErrHeightNotExist = errors.New("ErrHeightNotExist")
	ErrBlockCount     = errors.New("ErrBlockCount")
)

// executor errors
var (
	ErrMethodReturnType = errors.New("ErrMethodReturnType")
	ErrQueryNotSupport  = errors.New("ErrQueryNotSupport")
	ErrEmptyTx          = errors.New("ErrEmptyTx")
)
