package main

import (
	"io"
	"strings"

	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const logFormat = "%{color}[%{level:.4s}] %{time:15:04:05.000000} %{shortfunc} -> %{color:reset}%{message}"

var log = logging.MustGetLogger("lfsr128sum")

func leveled(w io.Writer, format string, level logging.Level) logging.LeveledBackend {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0),
		logging.MustStringFormatter(format)))
	backend.SetLevel(level, "lfsr128sum")
	return backend
}

/*
startLogging routes the module logger to w at WARNING, or DEBUG when verbose. A non-empty
file also receives every record at DEBUG through a rolling, compressed log; the returned
closer releases it.
*/
func startLogging(w io.Writer, verbose, noCodes bool, file string) io.Closer {
	plain := strings.NewReplacer("%{color:reset}", "", "%{color}", "").Replace(logFormat)
	format, level := logFormat, logging.WARNING
	if noCodes {
		format = plain
	}
	if verbose {
		level = logging.DEBUG
	}
	if file == "" {
		logging.SetBackend(leveled(w, format, level))
		return io.NopCloser(nil)
	}
	rolling := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	logging.SetBackend(leveled(w, format, level), leveled(rolling, plain, logging.DEBUG))
	return rolling
}
