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

package regmap_test

import (
	"testing"

	"github.com/softlatch/mia/hardware/regmap"
	"github.com/softlatch/mia/test"
)

func TestDecode(t *testing.T) {
	// first and last register of the first window
	tgt := regmap.Decode(0x00)
	test.ExpectEquality(t, tgt.Shared, false)
	test.ExpectEquality(t, tgt.Window, 0)
	test.ExpectEquality(t, tgt.Offset, regmap.IdxSelect)

	tgt = regmap.Decode(0x0f)
	test.ExpectEquality(t, tgt.Shared, false)
	test.ExpectEquality(t, tgt.Window, 0)
	test.ExpectEquality(t, tgt.Offset, 0x0f)

	// the window number tracks the address stride
	for w := 0; w < regmap.NumWindows; w++ {
		tgt = regmap.Decode(uint8(w*regmap.WindowSpan) + regmap.DataPort)
		test.ExpectEquality(t, tgt.Shared, false)
		test.ExpectEquality(t, tgt.Window, w)
		test.ExpectEquality(t, tgt.Offset, regmap.DataPort)
	}

	// 0x7f is the last window address and 0x80 the first shared address
	tgt = regmap.Decode(0x7f)
	test.ExpectEquality(t, tgt.Shared, false)
	test.ExpectEquality(t, tgt.Window, 7)
	test.ExpectEquality(t, tgt.Offset, 0x0f)

	tgt = regmap.Decode(0x80)
	test.ExpectEquality(t, tgt.Shared, true)

	tgt = regmap.Decode(regmap.DeviceStatus)
	test.ExpectEquality(t, tgt.Shared, true)

	tgt = regmap.Decode(regmap.SharedCommand)
	test.ExpectEquality(t, tgt.Shared, true)
}

func TestReserved(t *testing.T) {
	// the five window registers are recognized in every window
	for w := 0; w < regmap.NumWindows; w++ {
		base := uint8(w * regmap.WindowSpan)
		for _, o := range []uint8{regmap.IdxSelect, regmap.DataPort, regmap.CfgFieldSelect, regmap.CfgData, regmap.Command} {
			test.ExpectEquality(t, regmap.Reserved(base+o), false)
		}

		// offsets past the command register are reserved
		for o := regmap.Command + 1; o < regmap.WindowSpan; o++ {
			test.ExpectEquality(t, regmap.Reserved(base+o), true)
		}
	}

	for _, a := range []uint8{regmap.DeviceStatus, regmap.IRQCauseLow, regmap.IRQCauseHigh,
		regmap.IRQMaskLow, regmap.IRQMaskHigh, regmap.IRQEnable, regmap.SharedCommand} {
		test.ExpectEquality(t, regmap.Reserved(a), false)
	}

	// unlisted shared addresses are reserved. 0xf6 is the address
	// immediately after the last IRQ register
	test.ExpectEquality(t, regmap.Reserved(0x80), true)
	test.ExpectEquality(t, regmap.Reserved(0xf6), true)
	test.ExpectEquality(t, regmap.Reserved(0xfe), true)
}

func TestLabel(t *testing.T) {
	test.ExpectEquality(t, regmap.Label(0x00), "W0_IDX_SELECT")
	test.ExpectEquality(t, regmap.Label(0x31), "W3_DATA_PORT")
	test.ExpectEquality(t, regmap.Label(0x74), "W7_COMMAND")
	test.ExpectEquality(t, regmap.Label(0x05), "W0_RESERVED")
	test.ExpectEquality(t, regmap.Label(regmap.DeviceStatus), "DEVICE_STATUS")
	test.ExpectEquality(t, regmap.Label(regmap.IRQEnable), "IRQ_ENABLE")
	test.ExpectEquality(t, regmap.Label(regmap.SharedCommand), "SHARED_COMMAND")
	test.ExpectEquality(t, regmap.Label(0x80), "RESERVED")
}

func TestSymbols(t *testing.T) {
	sym := regmap.Symbols()

	// five registers per window plus the seven shared registers
	test.ExpectEquality(t, len(sym), regmap.NumWindows*5+7)

	test.ExpectEquality(t, sym["W0_IDX_SELECT"], 0x00)
	test.ExpectEquality(t, sym["W7_COMMAND"], 0x74)
	test.ExpectEquality(t, sym["IRQ_ENABLE"], regmap.IRQEnable)

	// every symbol labels its own address
	for s, a := range sym {
		test.ExpectEquality(t, regmap.Label(a), s)
	}
}
