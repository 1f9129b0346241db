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

package host

import (
	"errors"
	"fmt"

	"github.com/softlatch/mia/hardware/bus"
	"github.com/softlatch/mia/hardware/rome"
)

// RAMSize is the host's full address space. The real machine decodes parts
// of it to other chips; the driver keeps it as one array and lets the
// adapter claim the addresses it answers for.
const RAMSize = 0x10000

// bootPatience is the number of idle cycles the driver will wait for the
// adapter to release the reset line.
const bootPatience = 10000

// ErrBootTimeout is returned by Boot when the adapter never brings the
// host out of reset.
var ErrBootTimeout = errors.New("boot timeout")

// Bus is the adapter as seen from the host pins. The boolean return values
// report whether the adapter claimed the address; unclaimed addresses fall
// through to the host's own RAM.
type Bus interface {
	BusRead(address uint16) (uint8, bool)
	BusWrite(address uint16, data uint8) bool
	Idle(cycles int)
	ResetAsserted() bool
	IRQAsserted() bool
}

// Driver is the host side of the system: a bus master standing in for the
// 6502 and its RAM. It does not emulate the CPU instruction by instruction;
// it performs the bus traffic the CPU's software would, which is all the
// adapter can see of it anyway.
type Driver struct {
	bus Bus

	// RAM is the host memory. Kernel images are streamed into it during
	// boot, starting at the load address.
	RAM []uint8

	kernelEntry uint16
	kernelSize  int
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(b Bus) *Driver {
	return &Driver{
		bus: b,
		RAM: make([]uint8, RAMSize),
	}
}

// Read performs one bus read cycle. Addresses the adapter does not claim
// are read from host RAM.
func (drv *Driver) Read(address uint16) uint8 {
	if d, ok := drv.bus.BusRead(address); ok {
		return d
	}
	return drv.RAM[address]
}

// Write performs one bus write cycle. Addresses the adapter does not claim
// are written to host RAM.
func (drv *Driver) Write(address uint16, data uint8) {
	if drv.bus.BusWrite(address, data) {
		return
	}
	drv.RAM[address] = data
}

// ReadRegister reads an adapter register by its local address.
func (drv *Driver) ReadRegister(local uint8) uint8 {
	return drv.Read(bus.Base + uint16(local))
}

// WriteRegister writes an adapter register by its local address.
func (drv *Driver) WriteRegister(local uint8, data uint8) {
	drv.Write(bus.Base+uint16(local), data)
}

// Boot drives the host's half of the boot sequence: wait out the reset
// hold, follow the reset vector into the loader and perform the loader's
// bus traffic, streaming the kernel into RAM. The adapter must already
// have begun its own half of the sequence.
//
// On return the kernel image is in RAM and the adapter has switched to the
// normal clock phase.
func (drv *Driver) Boot() error {
	// the adapter holds the reset line while it prepares the ROM window
	for i := 0; drv.bus.ResetAsserted(); i++ {
		if i >= bootPatience {
			return fmt.Errorf("host: %w: reset never released", ErrBootTimeout)
		}
		drv.bus.Idle(1)
	}

	// fetch the reset vector
	lo := drv.Read(0xfffc)
	hi := drv.Read(0xfffd)
	entry := uint16(hi)<<8 | uint16(lo)
	if entry != rome.EntryPoint {
		return fmt.Errorf("host: unexpected reset vector %#04x", entry)
	}

	// the loader's main loop: poll the status address, move one byte per
	// pass from the data address into RAM
	address := uint16(rome.LoadAddress)
	n := 0
	for {
		if drv.Read(rome.EntryPoint+rome.KernelStatus) == 0 {
			break
		}
		if n >= RAMSize-rome.LoadAddress {
			return fmt.Errorf("host: kernel stream exceeds addressable RAM")
		}
		drv.RAM[address] = drv.Read(rome.EntryPoint + rome.KernelData)
		address++
		n++
	}

	drv.kernelEntry = rome.LoadAddress
	drv.kernelSize = n

	// the jump into the kernel. the adapter uses the quiet cycle to bank
	// the ROM window out and raise the clock
	drv.bus.Idle(1)

	return nil
}

// KernelEntry returns the address the boot sequence handed control to.
func (drv *Driver) KernelEntry() uint16 {
	return drv.kernelEntry
}

// KernelSize returns the number of kernel bytes streamed during boot.
func (drv *Driver) KernelSize() int {
	return drv.kernelSize
}

// IRQAsserted returns the state of the adapter's interrupt line as the
// host sees it.
func (drv *Driver) IRQAsserted() bool {
	return drv.bus.IRQAsserted()
}
