// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"errors"
	"reflect"
	"testing"

	"github.com/33cn/guesscoin/common/address"
	dbm "github.com/33cn/guesscoin/common/db"
	"github.com/33cn/guesscoin/types"
	pkgerr "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNegative = errors.New("ErrNegative")

type echoType struct{}

func (echoType) DecodePayloadValue(tx *types.Transaction) (string, reflect.Value, error) {
	var v types.Int64
	if err := types.Decode(tx.Payload, &v); err != nil {
		return "", reflect.Value{}, err
	}
	if v.Data == 0 {
		return "Missing", reflect.ValueOf(&v), nil
	}
	return "Echo", reflect.ValueOf(&v), nil
}

func (echoType) DecodeQueryParam(funcName string, params []byte) (reflect.Value, error) {
	var v types.Int64
	if err := types.Decode(params, &v); err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&v), nil
}

type echo struct {
	DriverBase
}

func newEcho() Driver {
	e := &echo{}
	e.SetChild(e)
	e.SetExecutorType(echoType{})
	return e
}

func (e *echo) GetDriverName() string {
	return "echo"
}

func (e *echo) Exec_Echo(v *types.Int64, tx *types.Transaction, index int) (*types.Receipt, error) {
	if v.Data < 0 {
		return nil, errNegative
	}
	kv := &types.KeyValue{Key: []byte("mavl-echo-" + tx.From), Value: types.Encode(v)}
	if err := e.GetStateDB().Set(kv.Key, kv.Value); err != nil {
		return nil, err
	}
	return &types.Receipt{Ty: types.ExecOk, KV: []*types.KeyValue{kv}}, nil
}

func (e *echo) Query_Echo(v *types.Int64) (types.Message, error) {
	if v.Data < 0 {
		return nil, errNegative
	}
	return &types.Int64{Data: v.Data + e.GetHeight()}, nil
}

func init() {
	Register("echo", newEcho)
}

func TestRegister(t *testing.T) {
	d, err := LoadDriver("echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", d.GetName())
	assert.Contains(t, DriverNames(), "echo")
	assert.Equal(t, address.ExecAddress("echo"), ExecAddress("echo"))
	assert.True(t, IsDriverAddress(ExecAddress("echo")))

	_, err = LoadDriver("nothing")
	assert.Equal(t, types.ErrExecNotFound, pkgerr.Cause(err))
	assert.Panics(t, func() { Register("echo", newEcho) })
}

func TestExec(t *testing.T) {
	d, err := LoadDriver("echo")
	require.NoError(t, err)
	db, _ := dbm.NewGoMemDB("test", "", 0)
	d.SetStateDB(db)
	d.SetEnv(10, 1000)
	assert.Equal(t, int64(10), d.GetHeight())
	assert.Equal(t, int64(1000), d.GetBlockTime())

	tx := &types.Transaction{Execer: "echo", From: "a", Payload: types.Encode(&types.Int64{Data: 5})}
	require.NoError(t, d.CheckTx(tx, 0))
	receipt, err := d.Exec(tx, 0)
	require.NoError(t, err)
	require.Len(t, receipt.KV, 1)
	v, err := db.Get([]byte("mavl-echo-a"))
	require.NoError(t, err)
	assert.Equal(t, types.Encode(&types.Int64{Data: 5}), v)

	tx.Payload = types.Encode(&types.Int64{Data: -1})
	_, err = d.Exec(tx, 0)
	assert.Equal(t, errNegative, err)

	tx.Payload = nil
	assert.Equal(t, types.ErrEmptyTx, d.CheckTx(tx, 0))
	_, err = d.Exec(tx, 0)
	assert.Equal(t, types.ErrActionNotSupport, pkgerr.Cause(err))
}

func TestQuery(t *testing.T) {
	d, err := LoadDriver("echo")
	require.NoError(t, err)
	d.SetEnv(3, 0)
	msg, err := d.Query("Echo", types.Encode(&types.Int64{Data: 4}))
	require.NoError(t, err)
	assert.Equal(t, int64(7), msg.(*types.Int64).Data)

	_, err = d.Query("Echo", types.Encode(&types.Int64{Data: -4}))
	assert.Equal(t, errNegative, err)

	_, err = d.Query("Other", nil)
	assert.Equal(t, types.ErrQueryNotSupport, pkgerr.Cause(err))
}

func TestListMethod(t *testing.T) {
	funcs := ListMethod(&echo{})
	assert.Contains(t, funcs, "Exec_Echo")
	assert.Contains(t, funcs, "Query_Echo")
	assert.NotContains(t, funcs, "GetDriverName")
}
