// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"path/filepath"

	"github.com/33cn/guesscoin/blockchain"
	dbm "github.com/33cn/guesscoin/common/db"
	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/executor"
	"github.com/33cn/guesscoin/metrics"
	"github.com/33cn/guesscoin/pluginmgr"
	"github.com/33cn/guesscoin/types"
)

var clog = log.New("module", "commands")

// Node 本地节点: 数据库, 区块高度和执行器
type Node struct {
	Cfg    *types.Config
	DB     dbm.DB
	Chain  *blockchain.BlockChain
	Exec   *executor.Executor
	cancel context.CancelFunc
}

// OpenNode 读取配置, 打开数据库并初始化所有插件的执行器
func OpenNode(confPath, datadir string) (*Node, error) {
	cfg := types.DefaultConfig()
	if confPath != "" {
		var err error
		cfg, err = types.InitCfg(confPath)
		if err != nil {
			return nil, err
		}
	}
	if datadir != "" {
		resetDatadir(cfg, datadir)
	}
	log.SetFileLog(cfg.Log)

	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		return nil, err
	}
	cache, err := dbm.NewCacheDB(db, int(cfg.Store.CacheSize))
	if err != nil {
		db.Close()
		return nil, err
	}
	chain, err := blockchain.New(cache)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := pluginmgr.InitExec(cfg); err != nil {
		db.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	metrics.StartMetrics(ctx, cfg.Metrics, metrics.DefaultRegistry)
	clog.Debug("OpenNode", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath, "height", chain.Height())
	return &Node{
		Cfg:    cfg,
		DB:     db,
		Chain:  chain,
		Exec:   executor.New(cache, chain),
		cancel: cancel,
	}, nil
}

// Close 关闭数据库和日志文件
func (n *Node) Close() {
	n.cancel()
	n.DB.Close()
	log.Close()
}

// 相对路径的数据和日志放到 datadir 下
func resetDatadir(cfg *types.Config, datadir string) {
	if !filepath.IsAbs(cfg.Store.DbPath) {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
	if cfg.Log.LogFile != "" && !filepath.IsAbs(cfg.Log.LogFile) {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
}
