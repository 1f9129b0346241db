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

// Package govern defines the state of the emulation as a whole. It is a leaf
// package and can be imported from anywhere in the project.
package govern

// State indicates the state of the emulation.
type State int

// List of possible emulation states.
//
// EmulatorStart is the default state and is never entered again once the
// emulation has begun.
//
// Values are ordered so that order comparisons are meaningful. For example,
// Running is "greater than" Stepping, Paused, etc.
const (
	EmulatorStart State = iota
	Initialising
	Paused
	Stepping
	Running
	Ending
)

func (s State) String() string {
	switch s {
	case EmulatorStart:
		return "emulator start"
	case Initialising:
		return "initialising"
	case Paused:
		return "paused"
	case Stepping:
		return "stepping"
	case Running:
		return "running"
	case Ending:
		return "ending"
	}
	panic("unknown emulation state")
}
