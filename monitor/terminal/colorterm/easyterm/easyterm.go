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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". it provides
// some features not present in the third-party package, such as terminal
// geometry, and wraps termios methods in functions with friendlier names
package easyterm

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// EasyTerm is the main container for posix terminals. usually embedded in
// other struct types
type EasyTerm struct {
	input  *os.File
	output *os.File

	// current dimensions of the output terminal. access through the Geometry()
	// function
	geometry unix.Winsize

	canAttr    unix.Termios
	rawAttr    unix.Termios
	cbreakAttr unix.Termios

	// sig/ack channels to control the geometry signal handler
	terminateHandlerSig chan bool
	terminateHandlerAck chan bool

	// public functions that can be called from the signal handler are prefaced
	// with (to prevent race conditions, or worse):
	// 		pt.mu.Lock()
	// 		defer pt.mu.Unlock()
	mu sync.Mutex
}

// Initialise the fields in the EasyTerm struct
func (pt *EasyTerm) Initialise(inputFile, outputFile *os.File) error {
	// note which files we're using for input and output
	if inputFile == nil {
		return fmt.Errorf("easyterm: terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("easyterm: terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile

	// prepare the attributes for the different terminal modes we'll be using.
	// raw and cbreak modes are derived from the canonical attributes, not from
	// an empty Termios
	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)
	pt.rawAttr = pt.canAttr
	termios.Cfmakeraw(&pt.rawAttr)

	// the geometry of the output terminal before the first resize event
	_ = pt.UpdateGeometry()

	// set up sig/ack channels for signal handler
	pt.terminateHandlerSig = make(chan bool)
	pt.terminateHandlerAck = make(chan bool)

	// kickstart signal handler (it is so cool that this works so easily with
	// go channels)
	go func() {
		sigwinch := make(chan os.Signal, 1)
		signal.Notify(sigwinch, syscall.SIGWINCH)
		defer func() {
			pt.terminateHandlerAck <- true
		}()

		for {
			select {
			case <-sigwinch:
				_ = pt.UpdateGeometry()
			case <-pt.terminateHandlerSig:
				return
			}
		}
	}()

	return nil
}

// CleanUp closes resources created in the Initialise() function
func (pt *EasyTerm) CleanUp() {
	pt.terminateHandlerSig <- true
	<-pt.terminateHandlerAck
}

// TermPrint writes the formatted string to the output file
func (pt *EasyTerm) TermPrint(s string, a ...any) {
	pt.output.WriteString(fmt.Sprintf(s, a...))
	pt.output.Sync()
}

// UpdateGeometry gets the current dimensions (in characters and pixels) of the
// output terminal
func (pt *EasyTerm) UpdateGeometry() error {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	w, err := unix.IoctlGetWinsize(int(pt.output.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("easyterm: error updating terminal geometry information: %w", err)
	}
	pt.geometry = *w

	return nil
}

// Geometry returns the dimensions of the output terminal in character cells.
func (pt *EasyTerm) Geometry() (rows int, cols int) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return int(pt.geometry.Row), int(pt.geometry.Col)
}

// CanonicalMode puts terminal into normal, everyday canonical mode
func (pt *EasyTerm) CanonicalMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
}

// RawMode puts terminal into raw mode
func (pt *EasyTerm) RawMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.rawAttr)
}

// CBreakMode puts terminal into cbreak mode
func (pt *EasyTerm) CBreakMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
}

// Flush makes sure the terminal's input/output buffers are empty
func (pt *EasyTerm) Flush() error {
	if err := termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	if err := termios.Tcflush(pt.output.Fd(), termios.TCOFLUSH); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	return nil
}
