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

package bus

import "fmt"

// Window holds the latches of one register window. The windows are
// orthogonal; a write through one never disturbs another's latches, which
// is what lets host code use them as independent channels into the cursor
// table.
type Window struct {
	// ActiveIndex selects the cursor addressed by the window's data port,
	// config registers and command register.
	ActiveIndex uint8

	// ConfigField selects the cursor field addressed by the window's config
	// data register. Values outside the defined fields are latched as
	// written and ignored at access time.
	ConfigField uint8
}

func (w Window) String() string {
	return fmt.Sprintf("idx=%d field=%d", w.ActiveIndex, w.ConfigField)
}
