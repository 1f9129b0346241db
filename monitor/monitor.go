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

package monitor

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/softlatch/mia/config"
	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/hardware/host"
	"github.com/softlatch/mia/logger"
	"github.com/softlatch/mia/monitor/script"
	"github.com/softlatch/mia/monitor/terminal"
)

// Monitor is the main container for the interactive monitor.
type Monitor struct {
	mia  *hardware.MIA
	drv  *host.Driver
	prof config.Profile

	// the terminal the monitor communicates through. events are checked by
	// the terminal during TermRead()
	term   terminal.Terminal
	events *terminal.ReadEvents

	// the scribe only records anything when a SCRIPT RECORD session is
	// underway
	scribe script.Scribe

	// the register window commands operate through. changed with the WINDOW
	// command and reflected in the prompt
	window int

	// the main input loop is active while running is true
	running bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
//
// The supplied terminal is initialised as part of the construction and
// cleaned up when Run() returns.
func NewMonitor(mia *hardware.MIA, prof config.Profile, term terminal.Terminal) (*Monitor, error) {
	mon := &Monitor{
		mia:  mia,
		drv:  host.NewDriver(mia),
		prof: prof,
		term: term,
	}

	mon.events = &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			return terminal.UserInterrupt
		},
	}

	if err := term.Initialise(); err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}
	term.RegisterTabCompletion(newTabCompletion())

	return mon, nil
}

// Run the monitor until the user quits. The adapter's copy service is
// started for the duration; without it the COPY_BLOCK command would never
// complete.
func (mon *Monitor) Run() error {
	mon.mia.Start()
	defer mon.mia.End()
	defer mon.term.CleanUp()

	// interrupt signals are relayed to the terminal through the read events
	signal.Notify(mon.events.Signal, os.Interrupt)
	defer signal.Stop(mon.events.Signal)

	mon.printLine(terminal.StyleFeedback, "%s", mon.mia.String())
	mon.printLine(terminal.StyleFeedback, "type HELP for the list of commands")

	mon.running = true
	err := mon.inputLoop(mon.term)

	// the scribe buffers output. an active session must be flushed before
	// the monitor goes away
	if mon.scribe.IsActive() {
		if err := mon.scribe.EndSession(); err != nil {
			logger.Logf(logger.Allow, "monitor", "%v", err)
		}
	}

	return err
}

// the prompt names the active register window and notes any recording in
// progress.
func (mon *Monitor) prompt() terminal.Prompt {
	return terminal.Prompt{
		Type:      terminal.PromptTypeCommand,
		Content:   fmt.Sprintf("MIA W%d", mon.window),
		Recording: mon.scribe.IsActive(),
	}
}

// parseInput splits a line of input into individual commands and executes
// each one in turn. lines beginning with the comment leader are skipped,
// which allows handwritten scripts to carry commentary.
func (mon *Monitor) parseInput(input string) error {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "#") {
		return nil
	}

	for _, cmd := range strings.Split(input, ";") {
		if err := mon.parseCommand(strings.TrimSpace(cmd)); err != nil {
			// the failed command must not end up in any script being
			// recorded
			mon.scribe.Rollback()
			return err
		}
	}

	return nil
}

// parseCommand executes a single command.
func (mon *Monitor) parseCommand(cmd string) error {
	if cmd == "" {
		return nil
	}

	// the scribe buffers the line. Rollback() discards it again if the
	// command turns out to be invalid
	mon.scribe.WriteInput(cmd)

	tokens := strings.Fields(cmd)
	keyword := strings.ToUpper(tokens[0])

	for _, c := range commands {
		if c.name == keyword {
			return c.handler(mon, tokens[1:])
		}
	}

	return fmt.Errorf("%s is not a monitor command", keyword)
}
