// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 合约的度量数据, 定时输出到日志
package metrics

import (
	"context"
	"sort"
	"time"

	log "github.com/33cn/guesscoin/common/log"
	"github.com/33cn/guesscoin/types"
	gometrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

// DefaultRegistry 进程内共享的 registry
var DefaultRegistry = gometrics.NewRegistry()

// Counter 取得或注册一个计数器
func Counter(name string) gometrics.Counter {
	return gometrics.GetOrRegisterCounter(name, DefaultRegistry)
}

// StartMetrics 根据配置定时把 registry 输出到日志, ctx 结束后退出
func StartMetrics(ctx context.Context, cfg *types.Metrics, r gometrics.Registry) {
	if cfg == nil || !cfg.EnableMetrics {
		mlog.Info("Metrics data is not enabled to emit")
		return
	}
	if r == nil {
		r = DefaultRegistry
	}
	duration := time.Duration(cfg.Duration) * time.Second
	if duration <= 0 {
		duration = time.Minute
	}
	mlog.Info("StartMetrics", "duration", duration)
	go func() {
		ticker := time.NewTicker(duration)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				LogRegistry(r)
				return
			case <-ticker.C:
				LogRegistry(r)
			}
		}
	}()
}

// LogRegistry 输出一次所有的度量
func LogRegistry(r gometrics.Registry) {
	for _, name := range names(r) {
		switch m := r.Get(name).(type) {
		case gometrics.Counter:
			mlog.Info("counter", "name", name, "count", m.Count())
		case gometrics.Gauge:
			mlog.Info("gauge", "name", name, "value", m.Value())
		case gometrics.Meter:
			s := m.Snapshot()
			mlog.Info("meter", "name", name, "count", s.Count(), "rate1", s.Rate1())
		}
	}
}

// Snapshot 计数器的当前值
func Snapshot(r gometrics.Registry) map[string]int64 {
	values := make(map[string]int64)
	r.Each(func(name string, i interface{}) {
		if c, ok := i.(gometrics.Counter); ok {
			values[name] = c.Count()
		}
	})
	return values
}

func names(r gometrics.Registry) []string {
	var list []string
	r.Each(func(name string, i interface{}) {
		list = append(list, name)
	})
	sort.Strings(list)
	return list
}
