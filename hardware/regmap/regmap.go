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

package regmap

import "fmt"

// The host addresses the MIA through eight address lines. Decoding of the
// wider host address down to the eight bit local address happens outside the
// device, on the chip select line.
const (
	// NumWindows is the number of independent register windows.
	NumWindows = 8

	// WindowSpan is the stride between one window's registers and the next.
	WindowSpan = 0x10
)

// Register offsets within a window. The local address of a window register is
// the offset plus WindowSpan multiplied by the window number.
const (
	IdxSelect      uint8 = 0x00
	DataPort       uint8 = 0x01
	CfgFieldSelect uint8 = 0x02
	CfgData        uint8 = 0x03
	Command        uint8 = 0x04
)

// Shared registers by full local address. Every local address with the high
// bit set that is not listed here reads as zero and swallows writes.
const (
	DeviceStatus  uint8 = 0xF0
	IRQCauseLow   uint8 = 0xF1
	IRQCauseHigh  uint8 = 0xF2
	IRQMaskLow    uint8 = 0xF3
	IRQMaskHigh   uint8 = 0xF4
	IRQEnable     uint8 = 0xF5
	SharedCommand uint8 = 0xFF
)

// Target is the result of decoding an eight bit local address.
type Target struct {
	// Shared is true if the address selects the shared register space. when
	// true the Window and Offset fields are meaningless and the original
	// address selects the register directly.
	Shared bool

	// the window number and the register offset within that window.
	Window int
	Offset uint8
}

// Decode maps an eight bit local address onto a register Target. decoding is
// purely combinational. every address decodes to something, although most
// targets resolve to reserved registers.
func Decode(address uint8) Target {
	if address&0x80 == 0x80 {
		return Target{Shared: true}
	}
	return Target{
		Window: int(address>>4) & 0x07,
		Offset: address & 0x0f,
	}
}

// Reserved returns true if the local address does not select a recognized
// register. reserved addresses read as zero and ignore writes.
func Reserved(address uint8) bool {
	t := Decode(address)
	if t.Shared {
		switch address {
		case DeviceStatus, IRQCauseLow, IRQCauseHigh, IRQMaskLow, IRQMaskHigh, IRQEnable, SharedCommand:
			return false
		}
		return true
	}
	return t.Offset > Command
}

// Label returns the canonical name for a local address. reserved addresses
// are labelled as such.
func Label(address uint8) string {
	t := Decode(address)

	if t.Shared {
		switch address {
		case DeviceStatus:
			return "DEVICE_STATUS"
		case IRQCauseLow:
			return "IRQ_CAUSE_LOW"
		case IRQCauseHigh:
			return "IRQ_CAUSE_HIGH"
		case IRQMaskLow:
			return "IRQ_MASK_LOW"
		case IRQMaskHigh:
			return "IRQ_MASK_HIGH"
		case IRQEnable:
			return "IRQ_ENABLE"
		case SharedCommand:
			return "SHARED_COMMAND"
		}
		return "RESERVED"
	}

	var reg string
	switch t.Offset {
	case IdxSelect:
		reg = "IDX_SELECT"
	case DataPort:
		reg = "DATA_PORT"
	case CfgFieldSelect:
		reg = "CFG_FIELD_SELECT"
	case CfgData:
		reg = "CFG_DATA"
	case Command:
		reg = "COMMAND"
	default:
		reg = "RESERVED"
	}

	return fmt.Sprintf("W%d_%s", t.Window, reg)
}

// Symbols returns a table of every recognized register name to its local
// address. useful for symbolic address entry.
func Symbols() map[string]uint8 {
	sym := make(map[string]uint8)

	for w := 0; w < NumWindows; w++ {
		base := uint8(w * WindowSpan)
		for _, o := range []uint8{IdxSelect, DataPort, CfgFieldSelect, CfgData, Command} {
			sym[Label(base+o)] = base + o
		}
	}

	for _, a := range []uint8{DeviceStatus, IRQCauseLow, IRQCauseHigh, IRQMaskLow, IRQMaskHigh, IRQEnable, SharedCommand} {
		sym[Label(a)] = a
	}

	return sym
}
