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

package resources

import "os"

// the portable path is used if it exists in the current working directory,
// regardless of build type.
const portablePath = ".mia"

// checkPortable returns true if the portable path is present and is a
// directory.
func checkPortable() bool {
	nfo, err := os.Stat(portablePath)
	return err == nil && nfo.IsDir()
}
