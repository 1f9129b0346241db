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

// Package prefs facilitates the storage of preference values to disk.
//
// Preference values are instances of the Bool, String, Int, Float or Generic
// types. A value can be used on its own but is more usually registered with a
// Disk instance, which loads and saves the value to a prefs file.
//
// A prefs file is a plain text file of key/value pairs, one per line, sorted
// by key. More than one Disk instance can point to the same file; saving one
// instance will not clobber the keys belonging to another.
//
// Values given on the command line take precedence over the disk copy. See
// PushCommandLineStack() for details.
package prefs
