// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 配置文件
type Config struct {
	Title     string     `toml:"Title"`
	Log       *Log       `toml:"log"`
	Store     *Store     `toml:"store"`
	Metrics   *Metrics   `toml:"metrics"`
	GuessCoin *GuessCoin `toml:"guesscoin"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge         uint32 `toml:"maxAge"`
	LocalTime      bool   `toml:"localTime"`
	Compress       bool   `toml:"compress"`
	CallerFile     bool   `toml:"callerFile"`
	CallerFunction bool   `toml:"callerFunction"`
}

// Store 数据库配置
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
	// 读缓存条目数, 0 不开启
	CacheSize int32 `toml:"cacheSize"`
}

// Metrics 度量配置
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics"`
	// 输出间隔，单位秒
	Duration int64 `toml:"duration"`
}

// GuessCoin 猜硬币合约参数, 小数类参数使用字符串以保证精度
type GuessCoin struct {
	SystemAddr         string `toml:"systemAddr"`
	DeployerAddr       string `toml:"deployerAddr"`
	SystemFee          string `toml:"systemFee"`
	DeployerFee        string `toml:"deployerFee"`
	BankerCompensation string `toml:"bankerCompensation"`
	MaxOpenTables      int64  `toml:"maxOpenTables"`
	MinWager           int64  `toml:"minWager"`
	GracePeriod        int64  `toml:"gracePeriod"`
	JoinMargin         int64  `toml:"joinMargin"`
}

// default addresses of the fee receivers on a fresh local chain
const (
	DefaultSystemAddr   = "1BQXS6TxaYYG5mADaWij4AxhZZUTpw95a5"
	DefaultDeployerAddr = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
)

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	cfg := &Config{}
	fillDefault(cfg, nil)
	return cfg
}

// InitCfg 从文件读取配置
func InitCfg(path string) (*Config, error) {
	var cfg Config
	md, err := tml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "InitCfg decode %s", path)
	}
	fillDefault(&cfg, &md)
	return &cfg, nil
}

// InitCfgString 从字符串读取配置
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	md, err := tml.Decode(cfgstring, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "InitCfgString")
	}
	fillDefault(&cfg, &md)
	return &cfg, nil
}

// isDefined 配置文件里显式写了的整数项, 即使为 0 也不再填默认值
func isDefined(md *tml.MetaData, key ...string) bool {
	return md != nil && md.IsDefined(key...)
}

func fillDefault(cfg *Config, md *tml.MetaData) {
	if cfg.Title == "" {
		cfg.Title = TitleDefault
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Log.Loglevel == "" {
		cfg.Log.Loglevel = "error"
	}
	if cfg.Log.LogConsoleLevel == "" {
		cfg.Log.LogConsoleLevel = "error"
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "guesscoin"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "leveldb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Store.DbCache == 0 {
		cfg.Store.DbCache = 64
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Metrics.Duration <= 0 {
		cfg.Metrics.Duration = 60
	}
	if cfg.GuessCoin == nil {
		cfg.GuessCoin = &GuessCoin{}
	}
	gc := cfg.GuessCoin
	if gc.SystemAddr == "" {
		gc.SystemAddr = DefaultSystemAddr
	}
	if gc.DeployerAddr == "" {
		gc.DeployerAddr = DefaultDeployerAddr
	}
	if gc.SystemFee == "" {
		gc.SystemFee = "0.01"
	}
	if gc.DeployerFee == "" {
		gc.DeployerFee = "0"
	}
	if gc.BankerCompensation == "" {
		gc.BankerCompensation = "0.1"
	}
	if gc.MinWager == 0 && !isDefined(md, "guesscoin", "minWager") {
		gc.MinWager = 1
	}
	if gc.GracePeriod == 0 && !isDefined(md, "guesscoin", "gracePeriod") {
		gc.GracePeriod = 360
	}
	if gc.JoinMargin == 0 && !isDefined(md, "guesscoin", "joinMargin") {
		gc.JoinMargin = 6
	}
}
