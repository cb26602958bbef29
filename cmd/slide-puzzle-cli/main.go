// slide-puzzle - a web-based sliding-tile puzzle game and solver.
// Copyright (C) 2016 Daniel C. Brotsky.
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

// Command-line client for the slide-puzzle game and solver.  It
// plays entirely in memory, no cache or database required.
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/eseidel/slide-puzzle/puzzle"
	"github.com/eseidel/slide-puzzle/storage"
)

func main() {
	// catch signals
	shutdownOnSignal()

	// start on the classic board
	session := &cliSession{}
	session.start(4, 4)

	// serve
	err := listener(session, os.Stdout, os.Stdin)
	if err != nil {
		log.Printf("CLI failure: %v", err)
		os.Exit(1)
	}
}

// shutdownOnSignal waits in the background for an interrupt and
// exits cleanly when one arrives.
func shutdownOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		s := <-c
		fmt.Printf("\nReceived OS-level signal: %v\n", s)
		os.Exit(0)
	}()
}

/*

CLI session

*/

// A cliSession holds the in-memory move history, newest last, so
// back can restore prior arrangements.
type cliSession struct {
	steps []puzzle.Puzzle
	rnd   *rand.Rand
}

func (session *cliSession) current() puzzle.Puzzle {
	return session.steps[len(session.steps)-1]
}

func (session *cliSession) start(width, height int) {
	if session.rnd == nil {
		session.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p, err := puzzle.New(width, height)
	if err != nil {
		panic(err)
	}
	session.steps = []puzzle.Puzzle{p}
}

func (session *cliSession) addStep(next puzzle.Puzzle) {
	session.steps = append(session.steps, next)
}

func (session *cliSession) undoStep() bool {
	if len(session.steps) <= 1 {
		return false
	}
	session.steps[len(session.steps)-1] = nil // release current step
	session.steps = session.steps[:len(session.steps)-1]
	return true
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(session *cliSession, out io.Writer, in io.Reader) error {
	// if we are on a terminal, we do prompting
	// (see http://stackoverflow.com/questions/22744443/ for source)
	prompt := false
	if f, ok := out.(*os.File); ok {
		if stat, _ := f.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
			prompt = true
		}
	}

	input := make([]byte, 4096)
	for {
		if prompt {
			fmt.Fprintf(out, "puzzle> ")
		}
		n, err := in.Read(input)
		switch err {
		case nil:
			r := &request{inline: strings.Trim(string(input[:n]), " \t\r\n")}
			args := strings.Split(r.inline, " ")
			r.command = strings.ToLower(args[0])
			switch r.command {
			case "":
				continue
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
			dispatchCommand(session, out, r)
		case io.EOF:
			// ignore any input before the EOF
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
	handler     func(*cliSession, io.Writer, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"back", "", "go back one move", backHandler},
		{"board", "width height", "start a fresh board of the given size", boardHandler},
		{"click", "value", "click a tile to slide it", clickHandler},
		{"help", "", "show this command summary", helpHandler},
		{"load", "name", "restore a saved game", loadHandler},
		{"save", "name", "save the current game", saveHandler},
		{"scramble", "", "shuffle the current board", scrambleHandler},
		{"solve", "", "show the clicks that solve the board", solveHandler},
		{"state", "", "show the current board", stateHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(session *cliSession, w io.Writer, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

func stateHandler(session *cliSession, w io.Writer, r *request) {
	p := session.current()
	fmt.Fprintf(w, "%s", p.String())
	if p.Solved() {
		fmt.Fprintf(w, "Solved!\n")
	} else {
		fmt.Fprintf(w, "Misplaced tiles: %d (fitness %d)\n",
			p.IncorrectTiles(), p.Fitness())
	}
}

func clickHandler(session *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a tile value", r.command), w, r)
		return
	}
	value, err := strconv.Atoi(r.args[0])
	if err != nil || value < 0 || value >= session.current().Length() {
		usageHandler(fmt.Sprintf("%q is not a tile on this board", r.args[0]), w, r)
		return
	}
	next, moved := session.current().Click(value)
	if !moved {
		fmt.Fprintf(w, "Tile %d doesn't share a row or column with the open cell.\n", value)
		return
	}
	session.addStep(next)
	stateHandler(session, w, r)
}

func backHandler(session *cliSession, w io.Writer, r *request) {
	if !session.undoStep() {
		fmt.Fprintf(w, "No moves to undo.\n")
		return
	}
	stateHandler(session, w, r)
}

func boardHandler(session *cliSession, w io.Writer, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires a width and a height", r.command), w, r)
		return
	}
	width, werr := strconv.Atoi(r.args[0])
	height, herr := strconv.Atoi(r.args[1])
	if werr != nil || herr != nil {
		usageHandler("width and height must be integers", w, r)
		return
	}
	p, err := puzzle.New(width, height)
	if err != nil {
		fmt.Fprintf(w, "Can't make a %sx%s board: %v\n", r.args[0], r.args[1], err)
		return
	}
	session.steps = []puzzle.Puzzle{p}
	stateHandler(session, w, r)
}

func scrambleHandler(session *cliSession, w io.Writer, r *request) {
	session.addStep(session.current().Scramble(session.rnd))
	stateHandler(session, w, r)
}

func solveHandler(session *cliSession, w io.Writer, r *request) {
	p := session.current()
	if p.Solved() {
		fmt.Fprintf(w, "Already solved.\n")
		return
	}
	solution, err := puzzle.NewSolver(p).Solve()
	if err != nil {
		fmt.Fprintf(w, "No solution: %v\n", err)
		return
	}
	moves := solution.Moves()
	words := make([]string, len(moves))
	for i, m := range moves {
		words[i] = strconv.Itoa(m)
	}
	fmt.Fprintf(w, "Solution in %d clicks: %s\n", len(moves), strings.Join(words, " "))
}

// saved games go through the same storage layer the server uses,
// connected only when first needed so purely local play never
// touches redis or postgres
var storageConnected = false

func ensureStorage() error {
	if storageConnected {
		return nil
	}
	if _, _, err := storage.Connect(); err != nil {
		return err
	}
	storageConnected = true
	return nil
}

func saveHandler(session *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a game name", r.command), w, r)
		return
	}
	if err := ensureStorage(); err != nil {
		fmt.Fprintf(w, "Can't reach storage: %v\n", err)
		return
	}
	saved := &storage.Session{
		SID:     "cli:" + r.args[0],
		BID:     "cli",
		Created: time.Now().Format(time.RFC3339),
	}
	saved.AddStep(session.current())
	fmt.Fprintf(w, "Saved game %q.\n", r.args[0])
}

func loadHandler(session *cliSession, w io.Writer, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires a game name", r.command), w, r)
		return
	}
	if err := ensureStorage(); err != nil {
		fmt.Fprintf(w, "Can't reach storage: %v\n", err)
		return
	}
	saved := &storage.Session{SID: "cli:" + r.args[0]}
	if !saved.Lookup() {
		fmt.Fprintf(w, "No saved game named %q.\n", r.args[0])
		return
	}
	saved.LoadStep()
	session.steps = []puzzle.Puzzle{saved.Puzzle}
	stateHandler(session, w, r)
}

func helpHandler(session *cliSession, w io.Writer, r *request) {
	usageHandler("", w, r)
}

func usageHandler(msg string, w io.Writer, r *request) {
	if msg != "" {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	fmt.Fprintf(w, "Commands are:\n")
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "  %s %s - %s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  quit (or exit) - leave the game\n")
}

func errorHandler(err interface{}, w io.Writer, r *request) {
	fmt.Fprintf(w, "Error executing %q: %v\n", r.inline, err)
}
