// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Callback 在打开的节点上执行, 返回值以 json 输出
type Callback func(n *Node) (interface{}, error)

// NodeCtx 一次命令的执行环境
type NodeCtx struct {
	confPath string
	datadir  string
	cb       Callback
}

// NewNodeCtx 从命令的全局参数 conf 和 datadir 得到节点配置
func NewNodeCtx(cmd *cobra.Command, cb Callback) *NodeCtx {
	confPath, _ := cmd.Flags().GetString("conf")
	datadir, _ := cmd.Flags().GetString("datadir")
	return &NodeCtx{confPath: confPath, datadir: datadir, cb: cb}
}

// Run 执行并输出结果, 出错时输出到 stderr
func (c *NodeCtx) Run() {
	result, err := c.Exec()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

// Exec 打开节点执行回调, 结束后关闭节点
func (c *NodeCtx) Exec() (interface{}, error) {
	node, err := OpenNode(c.confPath, c.datadir)
	if err != nil {
		return nil, err
	}
	defer node.Close()
	return c.cb(node)
}
