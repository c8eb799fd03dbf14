// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/33cn/guesscoin/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel("nolevel"))
}

func TestFileHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newFileHandler(&buf, &types.Log{Loglevel: "warn"})
	l := log15.New()
	l.SetHandler(h)
	l.Info("hidden", "k", 1)
	l.Warn("shown", "table", 7)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "table=7")
}

func TestSetFileLog(t *testing.T) {
	cfg := &types.Log{LogFile: filepath.Join(t.TempDir(), "guesscoin.log")}
	SetFileLog(cfg)
	assert.Equal(t, "eror", cfg.Loglevel)
	require.NotNil(t, rotateLogger)
	New("module", "test").Error("write to file")
	Close()
	assert.Nil(t, rotateLogger)

	SetFileLog(nil)
	assert.Nil(t, rotateLogger)
	SetLogLevel("crit")
}
