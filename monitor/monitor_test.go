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

package monitor_test

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/softlatch/mia/config"
	"github.com/softlatch/mia/hardware"
	"github.com/softlatch/mia/monitor"
	"github.com/softlatch/mia/monitor/terminal"
	"github.com/softlatch/mia/test"
)

// mockTerm feeds a prepared list of input lines to the monitor and captures
// everything the monitor prints.
type mockTerm struct {
	inp       []string
	interrupt bool
	output    []string
}

func newMockTerm(inp ...string) *mockTerm {
	return &mockTerm{inp: inp}
}

func (trm *mockTerm) Initialise() error {
	return nil
}

func (trm *mockTerm) CleanUp() {
}

func (trm *mockTerm) RegisterTabCompletion(_ terminal.TabCompletion) {
}

func (trm *mockTerm) Silence(_ bool) {
}

func (trm *mockTerm) TermRead(_ terminal.Prompt, _ *terminal.ReadEvents) (string, error) {
	if trm.interrupt {
		trm.interrupt = false
		return "", terminal.UserInterrupt
	}
	if len(trm.inp) == 0 {
		return "", io.EOF
	}
	s := trm.inp[0]
	trm.inp = trm.inp[1:]
	return s, nil
}

func (trm *mockTerm) TermReadCheck() bool {
	return false
}

func (trm *mockTerm) IsRealTerminal() bool {
	return false
}

func (trm *mockTerm) TermPrintLine(sty terminal.Style, s string) {
	if sty == terminal.StyleEcho {
		return
	}
	trm.output = append(trm.output, s)
}

func (trm *mockTerm) allOutput() string {
	return strings.Join(trm.output, "\n")
}

func newTestMonitor(t *testing.T, trm terminal.Terminal) *monitor.Monitor {
	t.Helper()

	mia, err := hardware.NewMIA("test", nil)
	test.DemandSuccess(t, err)
	mia.Env.Normalise()

	mon, err := monitor.NewMonitor(mia, config.Default(), trm)
	test.DemandSuccess(t, err)

	return mon
}

func TestMonitorCommands(t *testing.T) {
	trm := newMockTerm(
		"STATUS",
		"POKE 0x00 128",
		"PEEK 0x00; PEEK DEVICE_STATUS",
		"EVAL ORIGIN_USER + 2",
		"CURSOR 128",
		"NOSUCH",
	)

	mon := newTestMonitor(t, trm)
	test.ExpectSuccess(t, mon.Run())

	out := trm.allOutput()
	test.ExpectSuccess(t, strings.Contains(out, "bus: "))
	test.ExpectSuccess(t, strings.Contains(out, "W0_IDX_SELECT <- 0x80"))
	test.ExpectSuccess(t, strings.Contains(out, "W0_IDX_SELECT = 0x80"))
	test.ExpectSuccess(t, strings.Contains(out, "DEVICE_STATUS = 0x80"))
	test.ExpectSuccess(t, strings.Contains(out, "(0x13802)"))
	test.ExpectSuccess(t, strings.Contains(out, "128: cur=0x013800"))
	test.ExpectSuccess(t, strings.Contains(out, "NOSUCH is not a monitor command"))
}

func TestMonitorQuit(t *testing.T) {
	trm := newMockTerm(
		"QUIT",
		"STATUS",
	)

	mon := newTestMonitor(t, trm)
	test.ExpectSuccess(t, mon.Run())

	// the input after QUIT is never read
	test.ExpectFailure(t, strings.Contains(trm.allOutput(), "bus: "))
}

func TestMonitorInterrupt(t *testing.T) {
	trm := newMockTerm("STATUS")
	trm.interrupt = true

	mon := newTestMonitor(t, trm)
	test.ExpectSuccess(t, mon.Run())

	// an interrupt on a terminal that is not interactive quits the monitor
	// immediately
	test.ExpectFailure(t, strings.Contains(trm.allOutput(), "bus: "))
}

func TestMonitorScriptRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "session.mia")

	trm := newMockTerm(
		fmt.Sprintf("SCRIPT RECORD %s", fn),
		"POKE 0x00 0x50",
		"SCRIPT END",
		"POKE 0x00 0",
		fmt.Sprintf("SCRIPT %s", fn),
		"PEEK 0x00",
	)

	mon := newTestMonitor(t, trm)
	test.ExpectSuccess(t, mon.Run())

	// playing the script back repeats the recorded poke and the final peek
	// sees its effect
	test.ExpectSuccess(t, strings.Contains(trm.allOutput(), "W0_IDX_SELECT = 0x50"))
}
