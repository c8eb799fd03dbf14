// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"
	"sync"

	"github.com/33cn/guesscoin/common/address"
	"github.com/33cn/guesscoin/types"
	"github.com/pkg/errors"
)

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

var (
	mu                 sync.RWMutex
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
)

// Register register driver by name
func Register(name string, create DriverCreate) {
	mu.Lock()
	defer mu.Unlock()
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[name] = address.ExecAddress(name)
}

// LoadDriver 每次返回一个新的驱动实例
func LoadDriver(name string) (Driver, error) {
	mu.RLock()
	c, ok := registedExecDriver[name]
	mu.RUnlock()
	if !ok {
		blog.Debug("LoadDriver", "driver", name)
		return nil, errors.Wrap(types.ErrExecNotFound, name)
	}
	return c(), nil
}

// DriverNames 已经注册的驱动
func DriverNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecAddress return exec address
func ExecAddress(name string) string {
	mu.RLock()
	addr, ok := execAddressNameMap[name]
	mu.RUnlock()
	if ok {
		return addr
	}
	return address.ExecAddress(name)
}

// IsDriverAddress 地址是否是某个执行器的地址
func IsDriverAddress(addr string) bool {
	mu.RLock()
	defer mu.RUnlock()
	for _, a := range execAddressNameMap {
		if a == addr {
			return true
		}
	}
	return false
}
