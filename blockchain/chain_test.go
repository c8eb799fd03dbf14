// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	dbm "github.com/33cn/guesscoin/common/db"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMine(t *testing.T) {
	db, _ := dbm.NewGoMemDB("blockchain", "", 0)
	chain, err := New(db)
	require.NoError(t, err)
	chain.now = func() time.Time { return time.Unix(1600000000, 0) }
	assert.Equal(t, int64(0), chain.Height())
	assert.Equal(t, int64(0), chain.BlockTime())

	height, err := chain.Mine(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), height)
	assert.Equal(t, int64(10), chain.Height())
	assert.Equal(t, int64(1600000000), chain.BlockTime())

	_, err = chain.Mine(0)
	assert.Equal(t, types.ErrBlockCount, errors.Cause(err))
	assert.Equal(t, int64(10), chain.Height())
}

func TestHeightPersisted(t *testing.T) {
	db, err := dbm.NewDB("blockchain", dbm.LevelDBBackendStr, t.TempDir(), 16)
	require.NoError(t, err)
	defer db.Close()
	chain, err := New(db)
	require.NoError(t, err)
	_, err = chain.Mine(3)
	require.NoError(t, err)

	chain2, err := New(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), chain2.Height())
	header, err := chain2.blockStore.GetHeader(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), header.Height)
	_, err = chain2.blockStore.GetHeader(4)
	assert.Equal(t, types.ErrHeightNotExist, err)
}
