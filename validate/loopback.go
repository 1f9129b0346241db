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

package validate

import (
	"github.com/softlatch/mia/hardware/host"
)

// Loopback presents the emulated adapter as a Port. Register access through
// the loopback never fails.
//
// The copy scenarios require the adapter's service loop to be running or the
// copy completion will never arrive.
type Loopback struct {
	drv *host.Driver
}

// NewLoopback is the preferred method of initialisation for the Loopback
// type.
func NewLoopback(drv *host.Driver) *Loopback {
	return &Loopback{drv: drv}
}

// ReadRegister implements the Port interface.
func (l *Loopback) ReadRegister(reg uint8) (uint8, error) {
	return l.drv.ReadRegister(reg), nil
}

// WriteRegister implements the Port interface.
func (l *Loopback) WriteRegister(reg uint8, data uint8) error {
	l.drv.WriteRegister(reg, data)
	return nil
}
