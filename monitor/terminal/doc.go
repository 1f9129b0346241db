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

// Package terminal defines the operations required for command line
// interaction with the monitor.
//
// For flexibility, the monitor itself takes an instance of the Terminal
// interface defined in this package. In this way, the monitor can be run
// without any changes in a wide variety of contexts.
//
// Two reference implementations are provided. The PlainTerminal reads and
// prints without any embellishments. It is suitable for dumb terminals and
// for when input is piped from another process.
//
// The ColorTerminal implementation provides a more complete POSIX terminal
// experience, with color output, command history and tab completion. It is
// the default terminal when the monitor is started from an interactive
// shell.
package terminal
