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

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/config"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/logging"
	"github.com/frankkopp/edaxgo/internal/obs"
	"github.com/frankkopp/edaxgo/internal/parallel"
	"github.com/frankkopp/edaxgo/internal/search"
	"github.com/frankkopp/edaxgo/internal/tt"
	"github.com/frankkopp/edaxgo/internal/util"
	"github.com/frankkopp/edaxgo/internal/version"
)

var out = message.NewPrinter(language.German)

// startBoardString is the starting position in spec section 6's
// 65-character board-string format: four center discs, X to move.
const startBoardString = "---------------------------OX------XO---------------------------X"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./edaxgo.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	logPath := flag.String("logpath", "", "path where to write log files to (stdout if empty)")
	weightsPath := flag.String("weights", "", "path to an evaluator weights file (defaults from config)")
	boardStr := flag.String("board", "", "65-char board string or \"<64 squares> <side>\" FEN-like form (spec section 6); defaults to the starting position")
	depth := flag.Int("depth", 0, "search depth limit (0 means solve to the end of the game)")
	moveTimeMs := flag.Int("movetime", 0, "search time limit in milliseconds (0 means no time limit)")
	workers := flag.Int("workers", 1, "number of parallel search workers (1 disables YBWC splitting)")
	perft := flag.Int("perft", 0, "runs perft to the given depth on -board (or the starting position) and exits")
	profileFlag := flag.Bool("profile", false, "enables CPU profiling for the duration of the run")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *profileFlag {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	if *logPath != "" {
		config.Settings.Log.LogPath = *logPath
	}
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	log := logging.GetLog()

	str := startBoardString
	if *boardStr != "" {
		str = *boardStr
	}
	parse := board.ParseBoardString
	if len(str) == 66 {
		parse = board.ParseFEN
	}
	pos, err := parse(str)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *perft != 0 {
		for d := 1; d <= *perft; d++ {
			start := time.Now()
			nodes := board.Perft(pos.Clone(), d)
			elapsed := time.Since(start)
			out.Printf("perft(%d) = %d  (%d nps)\n", d, nodes, util.Nps(nodes, elapsed))
		}
		return
	}

	weights := eval.DefaultWeights()
	path := *weightsPath
	if path == "" {
		path = config.Settings.Eval.WeightsPath
	}
	if loaded, err := eval.LoadWeights(path); err == nil {
		weights = loaded
	} else {
		log.Noticef("no weights file at %q, using built-in defaults (%v)", path, err)
	}

	table := tt.New(config.Settings.Search.TTSizeMB)
	s := search.NewSearch(table, weights)
	s.SetObserver(cliObserver{})

	if *workers > 1 {
		pool := parallel.NewPool(*workers)
		defer pool.Close()
		s.UsePool(pool)
	}

	limits := search.Limits{Depth: *depth}
	if *moveTimeMs > 0 {
		limits.TimeControl = true
		limits.MoveTime = time.Duration(*moveTimeMs) * time.Millisecond
	} else if limits.Depth == 0 {
		limits.Depth = pos.EmptyCount()
	}

	result := s.StartSearchSync(pos, limits)
	out.Println(result.String())
}

// cliObserver prints search progress to the console, the minimal
// stand-in for the teacher's uci.UciHandler front end (spec section 6's
// "external collaborator").
type cliObserver struct{}

func (cliObserver) OnIteration(info obs.Info) {
	out.Printf("depth=%d selectivity=%d score=%d nodes=%d time=%s\n",
		info.Depth, info.Selectivity, info.Score, info.Nodes, info.Time)
}

func (cliObserver) OnBestMove(result obs.Result) {
	out.Printf("bestmove %s\n", board.MoveString(result.BestMove))
}

func (cliObserver) OnInfoString(s string) {
	out.Println(s)
}

func printVersionInfo() {
	out.Printf("edaxgo %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
