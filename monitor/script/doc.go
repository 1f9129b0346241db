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

// Package script allows the monitor to record and replay command scripts.
// In this package we refer to this as scribing and rescribing.
//
// Scripts can of course be handwritten and be rescribed as though they had
// been scribed by the monitor. Command output is written as comment lines,
// beginning with the # symbol; rescribing skips them.
//
// Scripts can be run while scribing a new script. The command that started
// the playback is recorded in the new script but the played-back lines are
// not.
//
// The Rescribe type satisfies the terminal.Input interface and is used as
// a source for the monitor's input loop.
package script
