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

package hardware

import (
	"fmt"

	"github.com/softlatch/mia/monitor/govern"
)

// CycleChunk is the bus time that passes between continue checks in Run().
// checking once per cycle would cost more than the cycle itself.
const CycleChunk = 1000

// PerformanceBrake is a sensible number of continue checks between expensive
// event polls in client run loops.
const PerformanceBrake = 100

// Run sets the adapter running as quickly as possible. No host program is
// driving the bus: cycles pass as idle housekeeping while the interesting
// work arrives through the other entry points - a previously started boot
// sequence, the register bridge or the monitor.
//
// continueCheck() is polled between cycle chunks and should return
// govern.Ending when an external event indicates that the adapter should
// stop. The function is expected to block for as long as the emulation is
// paused.
func (mia *MIA) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	state := govern.Running
	var err error

	for state != govern.Ending {
		switch state {
		case govern.Running:
			mia.Idle(CycleChunk)
		case govern.Paused:
			// bus time does not pass while paused
		case govern.Stepping:
			mia.Idle(1)
		default:
			return fmt.Errorf("mia: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}
