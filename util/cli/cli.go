// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 命令行入口, 系统命令加上所有插件注册的命令
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/pluginmgr"
	"github.com/33cn/guesscoin/system/dapp/commands"
	"github.com/spf13/cobra"
)

// NewRootCmd 根命令
func NewRootCmd(title string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   title + "-cli",
		Short: title + " client tools",
	}
	rootCmd.PersistentFlags().String("conf", "", "config file, default config if empty")
	rootCmd.PersistentFlags().String("datadir", "", "data dir, relative paths of the config are joined to it")
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.ChainCmd(),
	)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

// Run :
func Run(title string) {
	log.SetLogLevel("error")
	if err := NewRootCmd(title).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
