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

// Package monitor implements an interactive monitor for the adapter.
// Features include:
//
//   - register peek and poke through the host bus
//   - cursor and window inspection
//   - block copies and copy record inspection
//   - expression evaluation with predefined register symbols
//   - basic scripting
//   - running the validation suite, against the emulated adapter or
//     against real hardware on a bench adapter
//
// Initialisation of the monitor is done with the NewMonitor() function
//
//	mon, _ := monitor.NewMonitor(mia, profile, term)
//
// The term argument must be an instance of a type that satisfies the
// Terminal interface, defined in the terminal package. The colorterm and
// plainterm sub-packages provide good reference implementations.
//
// Once initialised, the monitor is started with the Run() function. Run()
// returns when the user quits.
//
// The monitor addresses the adapter the way a host program would, through
// the host driver. A PEEK or a POKE is a genuine bus access with all the
// register side effects that implies, auto-stepping cursors included. The
// commands that display internal machine state (CURSOR, IRQ, DMA) read the
// emulation structures directly and have no side effects.
package monitor
