// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/guesscoin/common/address"
	"github.com/33cn/guesscoin/system/dapp"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		DepositCmd(),
		GetBalanceCmd(),
		ExecAddrCmd(),
		PubKeyToAddrCmd(),
	)
	return cmd
}

// DepositCmd 本地链充值
func DepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit coins to an address of the local chain",
		Run:   deposit,
	}
	cmd.Flags().StringP("addr", "t", "", "account addr")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().Int64P("amount", "a", 0, "amount")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func deposit(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	amount, _ := cmd.Flags().GetInt64("amount")
	ctx := NewNodeCtx(cmd, func(n *Node) (interface{}, error) {
		if err := address.CheckAddress(addr); err != nil {
			return nil, err
		}
		receipt, err := n.Exec.Deposit(addr, amount)
		if err != nil {
			return nil, err
		}
		return DecodeReceipt(receipt), nil
	})
	ctx.Run()
}

// GetBalanceCmd get balance of an address
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of a account address",
		Run:   balance,
	}
	cmd.Flags().StringP("addr", "t", "", "account addr")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	ctx := NewNodeCtx(cmd, func(n *Node) (interface{}, error) {
		acc, err := n.Exec.GetBalance(addr)
		if err != nil {
			return nil, err
		}
		return &AccountResult{Addr: addr, Balance: acc.Balance, Frozen: acc.Frozen}, nil
	})
	ctx.Run()
}

// ExecAddrCmd 执行器地址, 合约托管的资金在这个地址上
func ExecAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec_addr",
		Short: "Get the address of an executor",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("exec")
			fmt.Fprintln(cmd.OutOrStdout(), dapp.ExecAddress(name))
		},
	}
	cmd.Flags().StringP("exec", "e", "", "executor name")
	cmd.MarkFlagRequired("exec")
	return cmd
}

// PubKeyToAddrCmd 本地测试用, 由任意字符串生成地址
func PubKeyToAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey_to_addr",
		Short: "Convert a public key (or any seed string) to an address",
		Run: func(cmd *cobra.Command, args []string) {
			pubkey, _ := cmd.Flags().GetString("pubkey")
			fmt.Fprintln(cmd.OutOrStdout(), address.PubKeyToAddress([]byte(pubkey)).String())
		},
	}
	cmd.Flags().StringP("pubkey", "p", "", "public key")
	cmd.MarkFlagRequired("pubkey")
	return cmd
}
