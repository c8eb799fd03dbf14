// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/guesscoin/plugin/dapp/guesscoin/executor"
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	cmds "github.com/33cn/guesscoin/system/dapp/commands"
	"github.com/33cn/guesscoin/types"
	"github.com/spf13/cobra"
)

// GuessCoinCmd 猜硬币命令
func GuessCoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guesscoin",
		Short: "Guess coin game management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		TableCmd(),
		JoinCmd(),
		RevealCmd(),
		ForfeitCmd(),
		CommitCmd(),
	)
	return cmd
}

// TableCmd 开桌和查询
func TableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create and query tables",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateTableCmd(),
		ListTablesCmd(),
		ShowTableCmd(),
		ShowDistributionCmd(),
	)
	return cmd
}

// CreateTableCmd 庄家开桌
func CreateTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a table with collateral and a commitment",
		Run:   createTable,
	}
	addFromFlag(cmd)
	cmd.Flags().Int64P("amount", "a", 0, "collateral")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("commitment", "c", "", "commitment of the secret, see 'guesscoin commit'")
	cmd.MarkFlagRequired("commitment")
	cmd.Flags().Int64P("rounds", "r", 0, "blocks until reveal")
	cmd.MarkFlagRequired("rounds")
	return cmd
}

func createTable(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	amount, _ := cmd.Flags().GetInt64("amount")
	commitment, _ := cmd.Flags().GetString("commitment")
	rounds, _ := cmd.Flags().GetInt64("rounds")
	sendTx(cmd, gty.CreateRawTableCreateTx(from, amount, commitment, rounds))
}

// ListTablesCmd 可以下注的桌子
func ListTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tables",
		Run: func(cmd *cobra.Command, args []string) {
			query(cmd, gty.FuncNameListOpenTables, &gty.ReqNil{})
		},
	}
	return cmd
}

// ShowTableCmd 查询桌子
func ShowTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a table",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			query(cmd, gty.FuncNameGetTable, &gty.ReqTableID{ID: id})
		},
	}
	addTableIDFlag(cmd)
	return cmd
}

// ShowDistributionCmd 查询结算记录
func ShowDistributionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Show the distribution record of a settled table",
		Run: func(cmd *cobra.Command, args []string) {
			id, _ := cmd.Flags().GetInt64("id")
			query(cmd, gty.FuncNameGetDistribution, &gty.ReqTableID{ID: id})
		},
	}
	addTableIDFlag(cmd)
	return cmd
}

// JoinCmd 下注
func JoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join [front|back]",
		Short: "Place a wager on a table",
		Args:  cobra.ExactArgs(1),
		Run:   join,
	}
	addFromFlag(cmd)
	addTableIDFlag(cmd)
	cmd.Flags().Int64P("amount", "a", 0, "wager")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func join(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	id, _ := cmd.Flags().GetInt64("id")
	amount, _ := cmd.Flags().GetInt64("amount")
	guess, err := parseGuess(args[0])
	if err != nil {
		fmt.Fprintln(cmd.OutOrStderr(), err)
		return
	}
	sendTx(cmd, gty.CreateRawTableJoinTx(from, id, guess, amount))
}

func parseGuess(s string) (int32, error) {
	switch s {
	case "front", "odd", "1":
		return gty.GuessFront, nil
	case "back", "even", "0":
		return gty.GuessBack, nil
	}
	return 0, fmt.Errorf("guess must be front or back, got %q", s)
}

// RevealCmd 公开秘密数并结算
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the secret and settle the table",
		Run:   reveal,
	}
	addFromFlag(cmd)
	addTableIDFlag(cmd)
	cmd.Flags().Int64P("secret", "s", 0, "secret")
	cmd.MarkFlagRequired("secret")
	return cmd
}

func reveal(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	id, _ := cmd.Flags().GetInt64("id")
	secret, _ := cmd.Flags().GetInt64("secret")
	sendTx(cmd, gty.CreateRawTableRevealTx(from, id, secret))
}

// ForfeitCmd 庄家超时后结算
func ForfeitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forfeit",
		Short: "Settle a table whose banker missed the reveal",
		Run:   forfeit,
	}
	addFromFlag(cmd)
	addTableIDFlag(cmd)
	return cmd
}

func forfeit(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	id, _ := cmd.Flags().GetInt64("id")
	sendTx(cmd, gty.CreateRawTableForfeitTx(from, id))
}

// CommitCmd 计算秘密数的承诺, 不需要打开节点
func CommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute the commitment of a secret",
		Run: func(cmd *cobra.Command, args []string) {
			secret, _ := cmd.Flags().GetInt64("secret")
			fmt.Fprintln(cmd.OutOrStdout(), executor.MakeCommitment(secret))
		},
	}
	cmd.Flags().Int64P("secret", "s", 0, "secret")
	cmd.MarkFlagRequired("secret")
	return cmd
}

func addFromFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "sender address")
	cmd.MarkFlagRequired("from")
}

func addTableIDFlag(cmd *cobra.Command) {
	cmd.Flags().Int64P("id", "i", 0, "table id")
	cmd.MarkFlagRequired("id")
}

func sendTx(cmd *cobra.Command, tx *types.Transaction) {
	ctx := cmds.NewNodeCtx(cmd, func(n *cmds.Node) (interface{}, error) {
		receipt, err := n.Exec.ExecTx(tx)
		if err != nil {
			return nil, err
		}
		return cmds.DecodeReceipt(receipt, DecodeLog), nil
	})
	ctx.Run()
}

func query(cmd *cobra.Command, funcName string, req types.Message) {
	ctx := cmds.NewNodeCtx(cmd, func(n *cmds.Node) (interface{}, error) {
		return n.Exec.Query(gty.GuessCoinX, funcName, types.Encode(req))
	})
	ctx.Run()
}

// DecodeLog 解析猜硬币的回执日志
func DecodeLog(ty int32, log []byte) (string, interface{}, bool) {
	name, ok := gty.NewType().GetLogMap()[ty]
	if !ok {
		return "", nil, false
	}
	var msg types.Message
	if ty == gty.TyLogGuessCoinDistribution {
		msg = &gty.DistributionRecord{}
	} else {
		msg = &gty.ReceiptTable{}
	}
	if err := types.Decode(log, msg); err != nil {
		return name, nil, false
	}
	return name, msg, true
}
