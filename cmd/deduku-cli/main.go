// deduku.go - a narrated Sudoku deduction engine.
// Copyright (C) 2016 the deduku.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

// Command-line client for the deduku puzzle library and solver
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/deduku/deduku.go/puzzle"
	"github.com/deduku/deduku.go/storage"
)

func main() {
	// establish storage connections
	if _, _, err := storage.Connect(); err != nil {
		log.Printf("Couldn't connect to storage: %v", err)
		shutdown(startupFailureShutdown)
	}
	defer storage.Close()

	// catch signals
	shutdownOnSignal()

	// serve
	err := listener(os.Stdout, os.Stdin)
	if err != nil {
		log.Printf("CLI failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// input buffer size, variable for testing
var bufsize = 4096

// listener reads lines and dispatches them to handlers
func listener(out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	// (see http://stackoverflow.com/questions/22744443/ for source)
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	input := bufio.NewReaderSize(in, bufsize)
	for {
		if prompt {
			fmt.Fprintf(out, "deduku> ")
		}
		line, err := input.ReadString('\n')
		if inline := strings.Trim(line, " \t\r\n"); len(inline) > 0 {
			r := &request{inline: inline}
			args := strings.Split(r.inline, " ")
			r.command = strings.ToLower(args[0])
			switch r.command {
			case "quit":
				fallthrough
			case "exit":
				return nil
			}
			for _, arg := range args[1:] {
				if len(arg) > 0 {
					r.args = append(r.args, strings.ToLower(arg))
				}
			}
			dispatchCommand(out, r)
		}
		switch err {
		case nil:
		case io.EOF:
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		default:
			if prompt {
				fmt.Fprintf(out, " (read error)\n")
			}
			return err
		}
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"check", "name", "validate a library puzzle as a finished Sudoku", checkHandler},
		{"narrate", "on|off", "explain each deduction while solving", narrateHandler},
		{"puzzles", "", "list the puzzle library", puzzlesHandler},
		{"remove", "name", "remove a puzzle from the library", removeHandler},
		{"save", "name values...", "save a puzzle (81 values, 0 for empty)", saveHandler},
		{"show", "name", "show a library puzzle", showHandler},
		{"solve", "name", "solve a library puzzle by deduction", solveHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(w, r)
	}
}

/*

request handlers

*/

// client state
var (
	narrate = true
)

func narrateHandler(w io.Writer, r *request) {
	if len(r.args) > 0 {
		switch r.args[0] {
		case "on":
			narrate = true
		case "off":
			narrate = false
		default:
			usageHandler(fmt.Sprintf("argument to %s must be 'on' or 'off'", r.command), w, r)
			return
		}
	}
	if narrate {
		fmt.Fprintf(w, "Narration is on\n")
	} else {
		fmt.Fprintf(w, "Narration is off\n")
	}
}

func puzzlesHandler(w io.Writer, r *request) {
	infos := storage.ListPuzzles()
	if len(infos) == 0 {
		fmt.Fprintf(w, "The library is empty.\n")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%-20s %2d blank squares  (saved %s)\n",
			info.Name, info.Blanks, info.Created.Format("2006-01-02"))
	}
}

func showHandler(w io.Writer, r *request) {
	info, ok := lookupArg(w, r)
	if !ok {
		return
	}
	fmt.Fprintf(w, "%s", puzzle.GridString(info.Values))
}

func solveHandler(w io.Writer, r *request) {
	info, ok := lookupArg(w, r)
	if !ok {
		return
	}
	var reporters []puzzle.Reporter
	if narrate {
		reporters = append(reporters, puzzle.ReporterFunc(func(d puzzle.Deduction) {
			fmt.Fprintf(w, "  %s\n", d)
		}))
	}
	result, cached, err := storage.CachedSolve(info.Values, reporters...)
	if err != nil {
		// stored grids are validated on save
		panic(err)
	}
	if cached {
		log.Printf("Replayed cached solve of %q.", info.Name)
	}
	fmt.Fprintf(w, "%s", result)
}

func checkHandler(w io.Writer, r *request) {
	info, ok := lookupArg(w, r)
	if !ok {
		return
	}
	valid, reports, err := puzzle.Check(info.Values)
	if err != nil {
		panic(err)
	}
	if valid {
		fmt.Fprintf(w, "%q is a correctly finished Sudoku.\n", info.Name)
		return
	}
	fmt.Fprintf(w, "%q is not a finished Sudoku:\n", info.Name)
	for _, report := range reports {
		if len(report.Duplicates) > 0 {
			fmt.Fprintf(w, "  %s repeats %v\n", report.Group, report.Duplicates)
		}
		if len(report.Missing) > 0 {
			fmt.Fprintf(w, "  %s is missing %v\n", report.Group, report.Missing)
		}
	}
}

func saveHandler(w io.Writer, r *request) {
	if len(r.args) != 1+puzzle.SquareCount {
		usageHandler(fmt.Sprintf("%s requires a name and %d values",
			r.command, puzzle.SquareCount), w, r)
		return
	}
	values := make([]int, puzzle.SquareCount)
	for i, arg := range r.args[1:] {
		v, err := strconv.Atoi(arg)
		if err != nil {
			usageHandler(fmt.Sprintf("%s value %d (%s) is not a number", r.command, i+1, arg), w, r)
			return
		}
		values[i] = v
	}
	info, err := storage.SavePuzzle(r.args[0], values)
	if err != nil {
		fmt.Fprintf(w, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Saved %q:\n%s", info.Name, puzzle.GridString(info.Values))
}

func removeHandler(w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a puzzle name", r.command), w, r)
		return
	}
	if !storage.RemovePuzzle(r.args[0]) {
		fmt.Fprintf(w, "No puzzle named %q in the library.\n", r.args[0])
		return
	}
	fmt.Fprintf(w, "Removed %q.\n", r.args[0])
}

// lookupArg resolves the handler's puzzle-name argument against
// the library, complaining on the caller's behalf when it can't.
func lookupArg(w io.Writer, r *request) (*storage.PuzzleInfo, bool) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a puzzle name", r.command), w, r)
		return nil, false
	}
	info, ok := storage.LookupPuzzle(r.args[0])
	if !ok {
		fmt.Fprintf(w, "No puzzle named %q in the library.\n", r.args[0])
		return nil, false
	}
	return info, true
}

func usageHandler(msg string, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-11s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Panic executing %q: %v\n", r.inline, err)
	log.Printf("Server error executing %q: %v\n", r.inline, err)
}

/*

coordinate shutdown across goroutines and top-level server

*/

type shutdownCause int

const (
	unknownShutdown = iota
	runtimeFailureShutdown
	startupFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// for testing, allow alternate forms of shutdown
var alternateShutdown func(reason shutdownCause)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	storage.Close()

	// for testing: run alternateShutdown instead, if defined
	if alternateShutdown != nil {
		alternateShutdown(reason)
		panic(reason) // shouldn't get here
	}

	// log reason for shutdown and exit
	switch reason {
	case unknownShutdown:
		log.Fatal("Exiting: normal shutdown.")
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case runtimeFailureShutdown:
		log.Fatal("Exiting: runtime failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: command listener failed.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	// based on example in os.signal godoc
	c := make(chan os.Signal, 1)
	signal.Notify(c) // die on all signals

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
