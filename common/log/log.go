// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志相关接口以及函数
package log

import (
	"io"
	"sync"

	"github.com/33cn/guesscoin/types"
	log15 "github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu sync.Mutex
	// 文件日志需要在退出时关闭
	rotateLogger *lumberjack.Logger
)

//SetLogLevel 只设置控制台日志输出级别
func SetLogLevel(logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(getConsoleLogHandler(logLevel))
}

//SetFileLog 设置文件日志和控制台日志信息
func SetFileLog(log *types.Log) {
	if log == nil {
		log = &types.Log{}
	}
	fillDefaultValue(log)
	if log.LogFile == "" {
		SetLogLevel(log.LogConsoleLevel)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(log15.MultiHandler(getConsoleLogHandler(log.LogConsoleLevel), getFileLogHandler(log)))
}

// Close 关闭文件日志
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(log15.DiscardHandler())
}

func closeFile() {
	if rotateLogger != nil {
		rotateLogger.Close()
		rotateLogger = nil
	}
}

// 保证默认性况下为error级别，防止打印太多日志
func fillDefaultValue(log *types.Log) {
	if log.Loglevel == "" {
		log.Loglevel = log15.LvlError.String()
	}
	if log.LogConsoleLevel == "" {
		log.LogConsoleLevel = log15.LvlError.String()
	}
}

func getConsoleLogHandler(logLevel string) log15.Handler {
	return log15.LvlFilterHandler(
		getLevel(logLevel),
		log15.StreamHandler(colorable.NewColorableStdout(), log15.TerminalFormat()),
	)
}

func getFileLogHandler(log *types.Log) log15.Handler {
	rotateLogger = &lumberjack.Logger{
		Filename:   log.LogFile,
		MaxSize:    int(log.MaxFileSize),
		MaxBackups: int(log.MaxBackups),
		MaxAge:     int(log.MaxAge),
		LocalTime:  log.LocalTime,
		Compress:   log.Compress,
	}
	return newFileHandler(rotateLogger, log)
}

func newFileHandler(w io.Writer, log *types.Log) log15.Handler {
	fileh := log15.LvlFilterHandler(
		getLevel(log.Loglevel),
		log15.StreamHandler(w, log15.LogfmtFormat()),
	)
	// 增加打印调用源文件、方法和代码行的判断
	if log.CallerFile {
		fileh = log15.CallerFileHandler(fileh)
	}
	if log.CallerFunction {
		fileh = log15.CallerFuncHandler(fileh)
	}
	return fileh
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 日志级别配置不正确时默认为error级别
		return log15.LvlError
	}
	return lvl
}

//New new
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
