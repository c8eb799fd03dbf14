// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/spf13/cobra"
)

// ChainCmd 本地链的区块高度
func ChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Local chain height management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		MineCmd(),
		HeightCmd(),
	)
	return cmd
}

// MineCmd 出空块推进高度
func MineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine empty blocks to advance the height",
		Run:   mine,
	}
	cmd.Flags().Int64P("count", "n", 1, "number of blocks")
	return cmd
}

func mine(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt64("count")
	ctx := NewNodeCtx(cmd, func(n *Node) (interface{}, error) {
		height, err := n.Chain.Mine(count)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"height": height}, nil
	})
	ctx.Run()
}

// HeightCmd 当前高度
func HeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "height",
		Short: "Get the current height",
		Run:   height,
	}
	return cmd
}

func height(cmd *cobra.Command, args []string) {
	ctx := NewNodeCtx(cmd, func(n *Node) (interface{}, error) {
		return map[string]int64{
			"height":    n.Chain.Height(),
			"blockTime": n.Chain.BlockTime(),
		}, nil
	})
	ctx.Run()
}
