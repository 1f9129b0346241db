// This file is part of MIA.
//
// MIA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MIA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MIA.  If not, see <https://www.gnu.org/licenses/>.

//go:build !windows
// +build !windows

// Package colorterm implements the Terminal interface for the MIA monitor.
// It supports color output, command history and tab completion.
package colorterm

import (
	"bufio"
	"io"
	"os"

	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/monitor/terminal/colorterm/easyterm"
)

// ColorTerminal implements the monitor's terminal interface with a basic
// ANSI terminal.
type ColorTerminal struct {
	easyterm.EasyTerm

	reader         chan readRune
	commandHistory []string
	tabCompletion  terminal.TabCompletion

	silenced bool
}

// readRune is the type sent over the rune reader channel.
type readRune struct {
	r   rune
	err error
}

// the rune reader goroutine runs for the lifetime of the process. there is no
// reliable interruptible read on stdin so the goroutine is simply abandoned
// at cleanup, holding at most one undelivered rune
func initRuneReader(input io.Reader) chan readRune {
	buf := bufio.NewReader(input)
	ch := make(chan readRune)

	go func() {
		for {
			r, _, err := buf.ReadRune()
			ch <- readRune{r: r, err: err}
			if err != nil {
				return
			}
		}
	}()

	return ch
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	err := ct.EasyTerm.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ct.commandHistory = make([]string, 0)
	if ct.reader == nil {
		ct.reader = initRuneReader(os.Stdin)
	}

	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.EasyTerm.TermPrint("\r")
	_ = ct.Flush()
	ct.EasyTerm.CleanUp()
}

// RegisterTabCompletion adds an implementation of TabCompletion to the
// ColorTerminal.
func (ct *ColorTerminal) RegisterTabCompletion(tc terminal.TabCompletion) {
	ct.tabCompletion = tc
}

// TermReadCheck implements the terminal.Input interface.
func (ct *ColorTerminal) TermReadCheck() bool {
	return false
}

// IsRealTerminal implements the terminal.Input interface.
func (ct *ColorTerminal) IsRealTerminal() bool {
	return true
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}
