//
// edaxgo - an Othello engine in GO, built in the idiom of FrankyGo
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging is a helper for the "github.com/op/go-logging" package to
// reduce the lines of code within each file to one line. The functions
// return Logger instances configured with the necessary backends and
// formatters.
package logging

import (
	"log"
	"os"
	"path/filepath"

	"github.com/op/go-logging"

	"github.com/frankkopp/edaxgo/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-10.10s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
}

// GetLog returns the standard Logger preconfigured with an os.Stdout
// backend, plus a file backend under config.Settings.Log.LogPath when
// one is configured, at config.LogLevel.
func GetLog() *logging.Logger {
	standardLog.SetBackend(leveledBackend("edaxgo.log", config.LogLevel))
	return standardLog
}

// leveledBackend builds the stdout backend used by every one of the
// three loggers, adding a file backend under config.Settings.Log.LogPath
// when one is configured, matching FrankyGo's dual console+file setup.
func leveledBackend(fileName string, level int) logging.LeveledBackend {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), standardFormat)
	var multi logging.Backend = backend
	if config.Settings.Log.LogPath != "" {
		f, err := os.OpenFile(filepath.Join(config.Settings.Log.LogPath, fileName),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			fileBackend := logging.NewBackendFormatter(logging.NewLogBackend(f, "", log.Lmsgprefix), standardFormat)
			multi = logging.MultiLogger(backend, fileBackend)
		}
	}
	leveled := logging.AddModuleLevel(multi)
	leveled.SetLevel(logging.Level(level), "")
	return leveled
}

// GetSearchLog returns the Logger used inside the search tree itself,
// preconfigured at config.SearchLogLevel. Kept separate from GetLog so the
// (very chatty) search trace can be silenced independently of the rest of
// the engine.
func GetSearchLog() *logging.Logger {
	searchLog.SetBackend(leveledBackend("edaxgo-search.log", config.SearchLogLevel))
	return searchLog
}

// GetTestLog returns a Logger for use from _test.go files, preconfigured at
// config.TestLogLevel.
func GetTestLog() *logging.Logger {
	testLog.SetBackend(leveledBackend("edaxgo-test.log", config.TestLogLevel))
	return testLog
}
