// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guesscoin 猜硬币插件
package guesscoin

import (
	"github.com/33cn/guesscoin/plugin/dapp/guesscoin/commands"
	"github.com/33cn/guesscoin/plugin/dapp/guesscoin/executor"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	"github.com/33cn/guesscoin/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     gty.GuessCoinX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.GuessCoinCmd,
	})
}
