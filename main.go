/*
	tinylisp: a tiny tree-walking Lisp interpreter with a bounded frame stack

	Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import "io"
import "os"
import "fmt"
import "flag"
import "context"
import "syscall"
import "os/signal"
import "crypto/rand"
import "runtime/pprof"
import "github.com/google/uuid"
import "github.com/tliron/commonlog"
import _ "github.com/tliron/commonlog/simple"
import "github.com/launix-de/tinylisp/scm"
import "github.com/launix-de/tinylisp/storage"

var log = commonlog.GetLogger("tinylisp")

// exit code for failures outside the interpreter (flags, settings, loading)
const exitHostError = 125

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func main() {
	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole command line tool; the result is the process exit code,
// which is the interpreter's error code for failed programs.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tinylisp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var commands arrayFlags
	fs.Var(&commands, "c", "Execute a program given on the command line")
	configFile := fs.String("config", "", "TOML settings file")
	stack := fs.Int("stack", scm.DefaultStackSize, "Maximum number of active procedure calls")
	token := fs.Int("token", scm.DefaultTokenSize, "Maximum length of a token or string in bytes")
	trace := fs.String("trace", "", "Write a Chrome trace of all procedure calls to this file")
	verbosity := fs.Int("v", 0, "Log verbosity (-1 = quiet, 1 = info, 2 = debug)")
	watch := fs.Bool("watch", false, "Run the program again whenever the file changes")
	listen := fs.String("listen", "", "Serve a websocket console at this address, e.g. :4322")
	docs := fs.String("docs", "", "Write the documentation of all builtins into this folder and exit")
	history := fs.String("history", "", "History file of the interactive shell")
	profile := fs.String("profile", "", "Write a CPU profile to this file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tinylisp [flags] [program.scm | program.scm.gz | s3://bucket/key]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return exitHostError
	}

	// settings file first, explicit flags win
	if *configFile != "" {
		if err := storage.LoadSettings(*configFile); err != nil {
			fmt.Fprintln(stderr, err)
			return exitHostError
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stack":
			storage.Settings.StackSize = *stack
		case "token":
			storage.Settings.TokenSize = *token
		case "trace":
			storage.Settings.Trace = *trace
		case "v":
			storage.Settings.Verbosity = *verbosity
		case "listen":
			storage.Settings.Listen = *listen
		case "history":
			storage.Settings.HistoryFile = *history
		}
	})
	commonlog.Configure(storage.Settings.Verbosity, nil)
	runID := uuid.New()
	log.Infof("run %s", runID)

	if *docs != "" {
		if err := scm.WriteDocumentation(*docs); err != nil {
			fmt.Fprintln(stderr, err)
			return exitHostError
		}
		return 0
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitHostError
	}

	config, err := storage.InitSettings()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitHostError
	}
	if config.Trace != nil {
		defer config.Trace.Close()
	}
	config.Stdout = stdout
	config.Stdin = stdin

	// init profiling
	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitHostError
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := 0
	if fs.NArg() == 1 {
		location := fs.Arg(0)
		code = runProgram(ctx, location, config, stderr)
		if *watch {
			err := storage.Watch(ctx, location, func() {
				runProgram(ctx, location, config, stderr)
			})
			if err != nil {
				fmt.Fprintln(stderr, err)
				return exitHostError
			}
			<-ctx.Done()
		}
	}
	for _, command := range commands {
		if code != 0 {
			break
		}
		code = runSource([]byte(command), "command line", config, stderr)
	}

	if storage.Settings.Listen != "" {
		if err := scm.NewConsole(config).Serve(storage.Settings.Listen); err != nil {
			fmt.Fprintln(stderr, err)
			return exitHostError
		}
		return code
	}
	if fs.NArg() == 0 && len(commands) == 0 {
		// REPL shell
		in := scm.New(nil, config)
		defer in.Shutdown()
		fmt.Fprint(stdout, "Type (help) to show help\n\n")
		if err := scm.Repl(in, storage.Settings.HistoryFile); err != nil {
			fmt.Fprintln(stderr, err)
			return exitHostError
		}
	}
	return code
}

// runProgram loads and runs a program file; errors are reported as
// "<location>:<line>: Error: <message>".
func runProgram(ctx context.Context, location string, config scm.Config, stderr io.Writer) int {
	source, err := storage.LoadSource(ctx, location)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitHostError
	}
	return runSource(source, location, config, stderr)
}

func runSource(source []byte, location string, config scm.Config, stderr io.Writer) int {
	in := scm.New(source, config)
	defer in.Shutdown()
	code := in.Run(func(message string, line int) {
		fmt.Fprintf(stderr, "%s:%d: Error: %s\n", location, line, message)
	})
	log.Debugf("%s: %d calls, peak depth %d", location, in.Stats.Calls, in.Stats.PeakDepth)
	return int(code)
}
