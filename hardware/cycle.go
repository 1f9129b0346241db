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
	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/pio"
	"github.com/softlatch/mia/hardware/rome"
	"github.com/softlatch/mia/logger"
)

// BusRead presents one host read cycle to the adapter. The returned boolean
// is true if the adapter drove the data bus; false means the address is not
// claimed and the byte belongs to whatever else lives there on the host side.
func (mia *MIA) BusRead(address uint16) (uint8, bool) {
	mia.crit.Lock()
	defer mia.crit.Unlock()

	mia.Clk.Tick(1)

	var data uint8
	var claimed bool

	if address >= rome.EntryPoint {
		data, claimed = mia.Rome.Read(address)
	} else if local, ok := bus.Decode(address); ok {
		data = mia.SM.Run(pio.Cycle{Address: local, OE: true, WE: false}, mia.Front)
		claimed = true
	}

	mia.process()

	return data, claimed
}

// BusWrite presents one host write cycle to the adapter. The returned boolean
// is true if the adapter consumed the write; false means the byte should land
// in host memory, which is how writes reach the RAM underneath the banked
// ROM window.
func (mia *MIA) BusWrite(address uint16, data uint8) bool {
	mia.crit.Lock()
	defer mia.crit.Unlock()

	mia.Clk.Tick(1)

	var claimed bool

	if address >= rome.EntryPoint && mia.Rome.Banked() {
		claimed = mia.Rome.Write(address, data)
	} else if local, ok := bus.Decode(address); ok {
		mia.SM.Run(pio.Cycle{Address: local, OE: true, WE: true, Data: data}, mia.Front)
		claimed = true
	}

	mia.process()
	mia.checkReboot()

	return claimed
}

// Idle advances the adapter by the number of bus cycles given, without any
// bus activity from the host.
func (mia *MIA) Idle(cycles int) {
	mia.crit.Lock()
	defer mia.crit.Unlock()

	for range cycles {
		mia.Clk.Tick(1)
		mia.process()
	}
}

// ResetAsserted returns true while the adapter is holding the host reset
// line low.
func (mia *MIA) ResetAsserted() bool {
	return mia.Rst.Asserted()
}

// IRQAsserted returns true while the adapter is driving the host interrupt
// line.
func (mia *MIA) IRQAsserted() bool {
	return mia.Pin.Asserted()
}

// housekeeping between bus cycles. the boot state machine and the reset line
// backstop both run off the virtual clock. must be called with crit held.
func (mia *MIA) process() {
	mia.Rome.Process()
	mia.Rst.Process(mia.Clk.Elapsed())
}

// requestReboot is handed to the bus front-end and is called from inside the
// bus cycle that carries the SYSTEM_RESET command. crit is already held.
func (mia *MIA) requestReboot() {
	mia.reboot = true
}

// checkReboot actions a latched SYSTEM_RESET once the bus cycle that carried
// it has been serviced. must be called with crit held.
func (mia *MIA) checkReboot() {
	if !mia.reboot {
		return
	}
	mia.reboot = false

	logger.Log(mia.Env, "mia", "system reset requested by host")

	mia.reset()
	mia.Rome.StartBootSequence()
}
