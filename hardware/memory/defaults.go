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

package memory

import (
	"github.com/softlatch/mia/hardware/memory/cursor"
)

// The arena is divided by convention. Nothing in the engine enforces these
// boundaries; they exist only as the factory targets of the well-known
// cursors.
const (
	OriginIndexTable = 0x000000 // 2 KiB
	OriginSystem     = 0x000800 // 16 KiB
	OriginVideo      = 0x004800 // 60 KiB
	OriginUser       = 0x013800 // 162 KiB
	OriginIO         = 0x03c000 // 16 KiB
)

// Well-known cursor assignments.
const (
	IdxErrorLog          = 0   // system error log
	IdxCharacterStart    = 16  // eight character tables, 16 to 23
	IdxPaletteStart      = 32  // sixteen palette banks, 32 to 47
	IdxNametableStart    = 48  // four nametables, 48 to 51
	IdxPaletteTableStart = 52  // four palette tables, 52 to 55
	IdxSpriteOAM         = 56  // sprite attribute records
	IdxActiveFrame       = 57  // active frame selector
	IdxKeyboard          = 64  // USB keyboard circular buffer
	IdxUSBStatus         = 65  // USB status byte
	IdxClockControl      = 80  // system control bytes, 80 to 95
	IdxResetControl      = 81
	IdxIRQMaskLow        = 83
	IdxIRQMaskHigh       = 84
	IdxUserStart         = 128 // user cursors, 128 to 255
)

// Layout of the video area. Eight character tables sit at the bottom; the
// palette banks and the nametable group follow higher up.
const (
	characterBase = OriginVideo
	characterSpan = 256 * 24

	paletteBase = 0x016800
	paletteSpan = 16

	nametableBase = paletteBase + 16*paletteSpan
	nametableSpan = 40 * 25

	paletteTableBase = nametableBase + 4*nametableSpan

	oamBase = paletteTableBase + 4*nametableSpan
	oamSpan = 256 * 4

	frameSelectBase = oamBase + oamSpan
)

// Layout of the IO and system areas.
const (
	keyboardBase  = OriginIO
	keyboardSpan  = 64
	usbStatusBase = keyboardBase + keyboardSpan

	sysctrlBase = OriginSystem + 0x1000
)

// factoryDefaults programs the cursor table with the power-on configuration.
// Must be called with the lock held.
func (m *Memory) factoryDefaults() {
	m.cursors = [cursor.NumCursors]cursor.Cursor{}

	set := func(idx int, addr uint32, limit uint32, step uint8, flags uint8) {
		m.cursors[idx] = cursor.Cursor{
			Current: addr,
			Default: addr,
			Limit:   limit,
			Step:    step,
			Flags:   flags,
		}
	}

	// system error log appends forever, no wrap
	set(IdxErrorLog, OriginSystem, 0, 1, cursor.AutoStep)

	// character tables, each wrapping in its own 6 KiB
	for i := range 8 {
		addr := uint32(characterBase + i*characterSpan)
		set(IdxCharacterStart+i, addr, addr+characterSpan, 1,
			cursor.AutoStep|cursor.WrapOnLimit)
	}

	// palette banks, each wrapping in 16 bytes
	for i := range 16 {
		addr := uint32(paletteBase + i*paletteSpan)
		set(IdxPaletteStart+i, addr, addr+paletteSpan, 1,
			cursor.AutoStep|cursor.WrapOnLimit)
	}

	// nametables and palette tables, 40x25 bytes each
	for i := range 4 {
		addr := uint32(nametableBase + i*nametableSpan)
		set(IdxNametableStart+i, addr, addr+nametableSpan, 1,
			cursor.AutoStep|cursor.WrapOnLimit)
	}
	for i := range 4 {
		addr := uint32(paletteTableBase + i*nametableSpan)
		set(IdxPaletteTableStart+i, addr, addr+nametableSpan, 1,
			cursor.AutoStep|cursor.WrapOnLimit)
	}

	// sprite OAM steps one four-byte record at a time
	set(IdxSpriteOAM, oamBase, oamBase+oamSpan, 4, cursor.AutoStep|cursor.WrapOnLimit)

	// frame selector is a plain byte
	set(IdxActiveFrame, frameSelectBase, 0, 1, 0)

	// USB keyboard circular buffer and status byte
	set(IdxKeyboard, keyboardBase, keyboardBase+keyboardSpan, 1,
		cursor.AutoStep|cursor.WrapOnLimit)
	set(IdxUSBStatus, usbStatusBase, 0, 1, 0)

	// system control bytes
	set(IdxClockControl, sysctrlBase, 0, 1, 0)
	set(IdxResetControl, sysctrlBase+16, 0, 1, 0)
	set(IdxIRQMaskLow, sysctrlBase+48, 0, 1, 0)
	set(IdxIRQMaskHigh, sysctrlBase+49, 0, 1, 0)

	// user cursors all start at the base of the user area. no wrap; users
	// reconfigure as needed
	for i := IdxUserStart; i < cursor.NumCursors; i++ {
		set(i, OriginUser, 0, 1, cursor.AutoStep)
	}
}
