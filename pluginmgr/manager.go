// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 插件注册, 统一初始化执行器和命令行
package pluginmgr

import (
	"sort"
	"sync"

	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	"github.com/spf13/cobra"
)

var (
	mgrlog      = log.New("module", "plugin.manager")
	mu          sync.RWMutex
	pluginItems = make(map[string]Plugin)
)

// Register 注册插件, 名字重复时 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// 按名字排序, 初始化顺序固定
func items() []Plugin {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}

// InitExec 初始化所有插件的执行器
func InitExec(cfg *types.Config) error {
	for _, item := range items() {
		if err := item.InitExec(cfg); err != nil {
			mgrlog.Error("InitExec", "plugin", item.GetName(), "err", err)
			return err
		}
	}
	return nil
}

// HasExec 是否有插件提供这个执行器
func HasExec(name string) bool {
	for _, item := range items() {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// AddCmd 把所有插件的命令行加到 rootCmd
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}
