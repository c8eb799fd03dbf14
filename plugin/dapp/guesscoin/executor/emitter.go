// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	gty "github.com/33cn/guesscoin/plugin/dapp/guesscoin/types"
	gometrics "github.com/rcrowley/go-metrics"
)

// metric names
const (
	MetricTableCreated       = "guesscoin.table.created"
	MetricTableJoined        = "guesscoin.table.joined"
	MetricTableRevealed      = "guesscoin.table.revealed"
	MetricTableForfeited     = "guesscoin.table.forfeited"
	MetricSystemFee          = "guesscoin.fee.system"
	MetricDeployerFee        = "guesscoin.fee.deployer"
	MetricBankerCompensation = "guesscoin.fee.banker"
	MetricSettledValue       = "guesscoin.settled.value"
	MetricRevealMismatch     = "guesscoin.reveal.mismatch"
)

// Emitter 结算的审计事件, 每次结算最多调用一次
type Emitter interface {
	Emit(record *gty.DistributionRecord)
}

type logEmitter struct {
	registry gometrics.Registry
}

// NewLogEmitter 输出到日志并更新 registry 中的计数
func NewLogEmitter(r gometrics.Registry) Emitter {
	return &logEmitter{registry: r}
}

func (e *logEmitter) Emit(record *gty.DistributionRecord) {
	glog.Info("distribution", "table", record.TableID, "kind", record.Kind,
		"regime", gty.RegimeString(record.Regime), "players", len(record.Players),
		"bankerPaid", record.BankerPaid, "bankerNet", record.BankerNet,
		"system", record.SystemFee, "deployer", record.DeployerFee,
		"compensation", record.BankerCompensation, "height", record.Height)
	for _, p := range record.Players {
		glog.Debug("distribution player", "table", record.TableID, "addr", p.Addr,
			"guess", gty.GuessString(p.Guess), "staked", p.Staked, "paid", p.Paid, "net", p.Net)
	}
	if e.registry == nil {
		return
	}
	if record.Kind == gty.DistKindForfeit {
		gometrics.GetOrRegisterCounter(MetricTableForfeited, e.registry).Inc(1)
	} else {
		gometrics.GetOrRegisterCounter(MetricTableRevealed, e.registry).Inc(1)
	}
	gometrics.GetOrRegisterCounter(MetricSystemFee, e.registry).Inc(record.SystemFee)
	gometrics.GetOrRegisterCounter(MetricDeployerFee, e.registry).Inc(record.DeployerFee)
	gometrics.GetOrRegisterCounter(MetricBankerCompensation, e.registry).Inc(record.BankerCompensation)
	gometrics.GetOrRegisterCounter(MetricSettledValue, e.registry).Inc(record.TotalPaid())
}
