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

// Package kernelimage represents kernel image files. The Loader type is
// used to attach an image to the adapter, which streams it to the host
// during the boot sequence.
//
// Images can be loaded from the local filesystem or over HTTP. The Hash
// field can be preset to insist on a particular image; it is filled with
// the hash of the loaded data otherwise.
//
// The package also carries a small demonstration kernel, available through
// the Embedded() function, so the adapter can boot a host with no image on
// disk.
package kernelimage
